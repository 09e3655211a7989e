package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/service"
)

// Response views. Products carry an absolute image URL composed from the
// request scheme and host; the relative path is what the store holds.

type productView struct {
	domain.Product
	Image string `json:"image"`
}

func newProductView(c *gin.Context, p domain.Product) productView {
	return productView{Product: p, Image: absoluteURL(c, p.Image)}
}

type cartItemView struct {
	ProductID int64       `json:"productId"`
	Quantity  int64       `json:"quantity"`
	Product   productView `json:"product"`
}

type cartView struct {
	UserID int64          `json:"userId"`
	Items  []cartItemView `json:"items"`
	Total  string         `json:"total"`
}

func newCartView(c *gin.Context, v *service.CartView) cartView {
	out := cartView{
		UserID: v.UserID,
		Items:  make([]cartItemView, 0, len(v.Lines)),
		Total:  service.FormatAmount(v.Total),
	}
	for _, ln := range v.Lines {
		out.Items = append(out.Items, cartItemView{
			ProductID: ln.ProductID,
			Quantity:  ln.Quantity,
			Product:   newProductView(c, ln.Product),
		})
	}
	return out
}

func absoluteURL(c *gin.Context, path string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + path
}

// Catalog handlers

// @Summary List products
// @Tags catalog
// @Produce json
// @Param category query string false "Category (case-insensitive)"
// @Param minPrice query number false "Min price"
// @Param maxPrice query number false "Max price"
// @Param search query string false "Substring of name or description"
// @Success 200 {array} productView
// @Router /api/products [get]
func (s *Server) listProducts(c *gin.Context) {
	var f repository.ProductFilter
	f.Category = c.Query("category")
	f.Search = c.Query("search")
	if v := c.Query("minPrice"); v != "" {
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &x
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &x
		}
	}
	list, err := s.catalog.List(c, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	out := make([]productView, 0, len(list))
	for _, p := range list {
		out = append(out, newProductView(c, p))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Get product by id
// @Tags catalog
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} productView
// @Failure 404 {object} map[string]string
// @Router /api/products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	p, err := s.catalog.GetByID(c, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newProductView(c, *p))
}

// @Summary List distinct categories
// @Tags catalog
// @Produce json
// @Success 200 {array} string
// @Router /api/categories [get]
func (s *Server) listCategories(c *gin.Context) {
	cats, err := s.catalog.Categories(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cats)
}

// Cart handlers

type addToCartReq struct {
	UserID    int64 `json:"userId"`
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

// @Summary Add product to cart
// @Tags cart
// @Accept json
// @Produce json
// @Param input body addToCartReq true "Line to add"
// @Success 201 {object} cartView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/cart [post]
func (s *Server) addToCart(c *gin.Context) {
	var req addToCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	if req.UserID == 0 || req.ProductID == 0 || req.Quantity == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userId, productId, and quantity are required"})
		return
	}
	view, err := s.cart.AddItem(c, req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, newCartView(c, view))
}

// @Summary Get user's cart
// @Tags cart
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} cartView
// @Router /api/cart/{userId} [get]
func (s *Server) getCart(c *gin.Context) {
	userID, err := parseID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
		return
	}
	view, err := s.cart.GetCart(c, userID)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newCartView(c, view))
}

// @Summary Remove item from cart
// @Tags cart
// @Produce json
// @Param userId path int true "User ID"
// @Param productId path int true "Product ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/cart/{userId}/{productId} [delete]
func (s *Server) removeFromCart(c *gin.Context) {
	userID, err := parseID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
		return
	}
	productID, err := parseID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
		return
	}
	view, err := s.cart.RemoveItem(c, userID, productID)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart", "cart": newCartView(c, view)})
}

// Order handlers

type orderItemReq struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

type placeOrderReq struct {
	UserID          int64          `json:"userId"`
	Items           []orderItemReq `json:"items"`
	ShippingAddress string         `json:"shippingAddress"`
}

// @Summary Place an order
// @Tags orders
// @Accept json
// @Produce json
// @Param input body placeOrderReq true "Order"
// @Success 201 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/orders [post]
func (s *Server) placeOrder(c *gin.Context) {
	var req placeOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	if req.UserID == 0 || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userId and items are required"})
		return
	}
	items := make([]domain.CartItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	o, err := s.orders.PlaceOrder(c, req.UserID, items, req.ShippingAddress)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, o)
}

// @Summary List user's orders
// @Tags orders
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} domain.Order
// @Router /api/orders/{userId} [get]
func (s *Server) listOrders(c *gin.Context) {
	userID, err := parseID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
		return
	}
	list, err := s.orders.ListByUser(c, userID)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInsufficientStock):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
