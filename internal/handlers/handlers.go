package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/armen4ik0/shoes-shop-app1/internal/auth"
	"github.com/armen4ik0/shoes-shop-app1/internal/config"
	"github.com/armen4ik0/shoes-shop-app1/internal/dbstorage"
	"github.com/armen4ik0/shoes-shop-app1/internal/models"
	"github.com/armen4ik0/shoes-shop-app1/internal/types"
	"github.com/armen4ik0/shoes-shop-app1/internal/usecase"
)

type AppHandler struct {
	Config  config.Config
	Storage *dbstorage.DBStorage
	Logger  *log.Logger
}

// NewAppHandler return new app over an already connected storage.
func NewAppHandler(conf config.Config, storage *dbstorage.DBStorage, logger *log.Logger) *AppHandler {
	return &AppHandler{
		Config:  conf,
		Storage: storage,
		Logger:  logger,
	}
}

// NewRouter return ready chi router with configured API urls.
func NewRouter(app *AppHandler) *chi.Mux {
	// Публикация API
	router := chi.NewRouter()
	router.Use(GzipMiddle)

	// Публично доступные маршруты: вход и витрина для гостей.
	router.Group(
		func(r chi.Router) {
			r.Post("/api/user/login", app.Login)
			r.Get("/api/products", app.GetProducts)
			r.Get("/api/products/{article}/photo", app.GetProductPhoto)
			r.Get("/api/suppliers", app.GetSuppliers)
		})

	// Заказы и справочники — только менеджер и администратор.
	router.Group(func(r chi.Router) {
		r.Use(Authenticator)
		r.Use(RequireRole(models.RoleManager, models.RoleAdmin))
		r.Get("/api/orders", app.GetOrders)
		r.Post("/api/orders", app.PostOrder)
		r.Put("/api/orders/{id}", app.PutOrder)
		r.Delete("/api/orders/{id}", app.DeleteOrder)
		r.Get("/api/pickup-points", app.GetPickupPoints)
	})

	// Карточки товаров редактирует только администратор.
	router.Group(func(r chi.Router) {
		r.Use(Authenticator)
		r.Use(RequireRole(models.RoleAdmin))
		r.Post("/api/products", app.PostProduct)
		r.Put("/api/products/{article}", app.PutProduct)
		r.Post("/api/user/register", app.Register)
	})

	return router
}

// Login POST handler is used to get auth token.
func (app *AppHandler) Login(rw http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		http.Error(rw, err.Error(), http.StatusBadRequest)
		return
	}

	if user.Login == "" || user.Password == "" {
		http.Error(rw, "wrong body format", http.StatusBadRequest)
		return
	}

	token, err := auth.GetToken(r.Context(), app.Storage, user)
	if err != nil {
		if errors.Is(err, dbstorage.ErrInvalidLoginPassword) {
			http.Error(rw, err.Error(), http.StatusUnauthorized)
			return
		}
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	resp, err := json.Marshal(types.LoginResponse{AuthToken: token})
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Authorization", token)
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(http.StatusOK)
	if _, err = rw.Write(resp); err != nil {
		app.Logger.Printf("login response: %v", err)
	}
}

// Register POST handler creates a user account, admin only.
func (app *AppHandler) Register(rw http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		http.Error(rw, err.Error(), http.StatusBadRequest)
		return
	}

	if user.Login == "" || user.Password == "" || user.Role == "" {
		http.Error(rw, "wrong body format", http.StatusBadRequest)
		return
	}
	if !models.ValidRole(user.Role) {
		http.Error(rw, "unknown role", http.StatusBadRequest)
		return
	}

	if err := auth.CreateUser(r.Context(), app.Storage, user); err != nil {
		if errors.Is(err, dbstorage.ErrUserAlreadyExists) {
			http.Error(rw, err.Error(), http.StatusConflict)
			return
		}
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(http.StatusCreated)
}

// GetProducts handler returns the catalog cards with search, supplier
// filter and stock sort applied.
func (app *AppHandler) GetProducts(rw http.ResponseWriter, r *http.Request) {
	query := types.CatalogQuery{
		Search:   r.URL.Query().Get("search"),
		Supplier: r.URL.Query().Get("supplier"),
		Sort:     types.SortMode(r.URL.Query().Get("sort")),
	}

	products, err := app.Storage.ListProducts(r.Context(), query)
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	resp, err := json.Marshal(usecase.Cards(products))
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(http.StatusOK)
	if _, err = rw.Write(resp); err != nil {
		app.Logger.Printf("products response: %v", err)
	}
}

// GetProductPhoto serves the product image resolved through the fallback
// chain, ending at the shared placeholder.
func (app *AppHandler) GetProductPhoto(rw http.ResponseWriter, r *http.Request) {
	article := chi.URLParam(r, "article")

	product, err := app.Storage.GetProduct(r.Context(), article)
	if err != nil {
		if errors.Is(err, dbstorage.ErrProductNotFound) {
			http.Error(rw, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	path := usecase.ResolvePhoto(product.PhotoPath, app.Config.ImagesDir, app.Config.PlaceholderImage)
	data, err := os.ReadFile(path)
	if err != nil {
		http.Error(rw, "photo not found", http.StatusNotFound)
		return
	}
	rw.Header().Set("Content-Type", http.DetectContentType(data))
	rw.WriteHeader(http.StatusOK)
	if _, err = rw.Write(data); err != nil {
		app.Logger.Printf("photo response: %v", err)
	}
}

// GetSuppliers returns the supplier filter values, the "all" sentinel first.
func (app *AppHandler) GetSuppliers(rw http.ResponseWriter, r *http.Request) {
	suppliers, err := app.Storage.ListSuppliers(r.Context())
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	resp, err := json.Marshal(append([]string{types.SupplierAll}, suppliers...))
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(http.StatusOK)
	if _, err = rw.Write(resp); err != nil {
		app.Logger.Printf("suppliers response: %v", err)
	}
}

// PostProduct handler validates the product form and inserts a new product.
func (app *AppHandler) PostProduct(rw http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	var in types.ProductInput
	if err := json.Unmarshal(body, &in); err != nil {
		http.Error(rw, err.Error(), http.StatusBadRequest)
		return
	}

	if err := usecase.SaveProduct(r.Context(), app.Storage, in); err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			http.Error(rw, err.Error(), http.StatusBadRequest)
		case errors.Is(err, dbstorage.ErrProductExists):
			http.Error(rw, err.Error(), http.StatusConflict)
		default:
			http.Error(rw, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	rw.WriteHeader(http.StatusCreated)
}

// PutProduct handler updates the product keyed by the article from the URL;
// the article itself never changes.
func (app *AppHandler) PutProduct(rw http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	var in types.ProductInput
	if err := json.Unmarshal(body, &in); err != nil {
		http.Error(rw, err.Error(), http.StatusBadRequest)
		return
	}
	in.Article = chi.URLParam(r, "article")

	if err := usecase.UpdateProduct(r.Context(), app.Storage, in); err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			http.Error(rw, err.Error(), http.StatusBadRequest)
		case errors.Is(err, dbstorage.ErrProductNotFound):
			http.Error(rw, err.Error(), http.StatusNotFound)
		default:
			http.Error(rw, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	rw.WriteHeader(http.StatusOK)
}

// GetOrders handler returns the order list filtered by status.
func (app *AppHandler) GetOrders(rw http.ResponseWriter, r *http.Request) {
	orders, err := app.Storage.ListOrders(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	resp, err := json.Marshal(orders)
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(http.StatusOK)
	if _, err = rw.Write(resp); err != nil {
		app.Logger.Printf("orders response: %v", err)
	}
}

// PostOrder handler creates an order from the dialog fields.
func (app *AppHandler) PostOrder(rw http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	var in types.OrderInput
	if err := json.Unmarshal(body, &in); err != nil {
		http.Error(rw, err.Error(), http.StatusBadRequest)
		return
	}

	if err := usecase.SaveOrder(r.Context(), app.Storage, in); err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			http.Error(rw, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(http.StatusCreated)
}

// PutOrder handler updates an order by id.
func (app *AppHandler) PutOrder(rw http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		http.Error(rw, "wrong order id", http.StatusBadRequest)
		return
	}

	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	var in types.OrderInput
	if err := json.Unmarshal(body, &in); err != nil {
		http.Error(rw, err.Error(), http.StatusBadRequest)
		return
	}

	if err := usecase.UpdateOrder(r.Context(), app.Storage, uint(id), in); err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			http.Error(rw, err.Error(), http.StatusBadRequest)
		case errors.Is(err, dbstorage.ErrOrderNotFound):
			http.Error(rw, err.Error(), http.StatusNotFound)
		default:
			http.Error(rw, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	rw.WriteHeader(http.StatusOK)
}

// DeleteOrder handler removes exactly the order with the given id.
func (app *AppHandler) DeleteOrder(rw http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		http.Error(rw, "wrong order id", http.StatusBadRequest)
		return
	}

	if err := app.Storage.DeleteOrder(r.Context(), uint(id)); err != nil {
		if errors.Is(err, dbstorage.ErrOrderNotFound) {
			http.Error(rw, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(http.StatusOK)
}

// GetPickupPoints handler returns the pickup point reference list.
func (app *AppHandler) GetPickupPoints(rw http.ResponseWriter, r *http.Request) {
	points, err := app.Storage.ListPickupPoints(r.Context())
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	resp, err := json.Marshal(points)
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(http.StatusOK)
	if _, err = rw.Write(resp); err != nil {
		app.Logger.Printf("pickup points response: %v", err)
	}
}
