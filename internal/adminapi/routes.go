package adminapi

import (
	"github.com/talkincode/shopcore/internal/domain"
	"github.com/talkincode/shopcore/internal/webserver"
)

// Register wires the HTTP surface. Reads of the catalog, registration,
// login and the status page are public; every mutating operation passes the
// access control gate, and user administration additionally requires the
// admin level.
func Register(srv *webserver.Server, h *Handler) {
	e := srv.Echo()
	secret := h.app.Config().Web.Secret

	e.GET("/", h.status)
	e.POST("/auth/register", h.register)
	e.POST("/auth/login", h.login)
	e.GET("/products", h.listProducts)

	// An empty-prefix echo group registers a catch-all route at "/" that
	// would shadow the public status route, so the gate is attached per
	// route instead.
	authed := webserver.RequireAuth(secret)
	e.POST("/products", h.createProduct, authed)
	e.PUT("/products/:id", h.updateProduct, authed)
	e.DELETE("/products/:id", h.deleteProduct, authed)
	e.POST("/products/:id/reduce-stock", h.reduceStock, authed)
	e.POST("/transactions", h.createTransaction, authed)
	e.GET("/transactions", h.listTransactions, authed)

	admin := e.Group("/users", webserver.RequireAuth(secret), webserver.RequireLevel(domain.LevelAdmin))
	admin.GET("", h.listUsers)
	admin.PUT("/:id", h.updateUser)
	admin.DELETE("/:id", h.deleteUser)

	srv.ServeUploads(h.app.FileStore())
}
