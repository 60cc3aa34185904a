package provider

import (
	"github.com/cartloom/cartloom/internal/config"
	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/repository"
	"github.com/cartloom/cartloom/internal/service"
)

// Container holds the wired application dependencies. The store is injected
// so every repository shares one connection pool and lifecycle.
type Container struct {
	Config *config.Config
	Store  *models.Store

	UserRepo        repository.UserRepository
	CategoryRepo    repository.CategoryRepository
	ProductRepo     repository.ProductRepository
	CartRepo        repository.CartRepository
	OrderRepo       repository.OrderRepository
	OrderDetailRepo repository.OrderDetailRepository
	TxRunner        repository.TxRunner

	AuthService     *service.AuthService
	UserService     *service.UserService
	CategoryService *service.CategoryService
	ProductService  *service.ProductService
	CartService     *service.CartService
	OrderService    *service.OrderService
}

// NewContainer wires repositories and services on top of the given store.
func NewContainer(cfg *config.Config, store *models.Store) *Container {
	c := &Container{Config: cfg, Store: store}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	c.UserRepo = repository.NewUserRepository(c.Store)
	c.CategoryRepo = repository.NewCategoryRepository(c.Store)
	c.ProductRepo = repository.NewProductRepository(c.Store)
	c.CartRepo = repository.NewCartRepository(c.Store)
	c.OrderRepo = repository.NewOrderRepository(c.Store)
	c.OrderDetailRepo = repository.NewOrderDetailRepository(c.Store)
	c.TxRunner = repository.NewTxRunner(c.Store.Client())
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.UserService = service.NewUserService(c.UserRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.OrderDetailRepo, c.UserRepo, c.TxRunner)
}
