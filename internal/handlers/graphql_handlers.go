package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"gocrm/internal/models"
	"gocrm/internal/services"

	"github.com/labstack/echo/v4"
)

// GraphQLRequest is the standard graph-query envelope: a query document plus
// optional variables. Operation inputs arrive through variables, never by
// string-splicing into the document.
type GraphQLRequest struct {
	Query         string                     `json:"query"`
	OperationName string                     `json:"operationName,omitempty"`
	Variables     map[string]json.RawMessage `json:"variables,omitempty"`
}

type GraphQLError struct {
	Message string `json:"message"`
}

type GraphQLResponse struct {
	Data   map[string]any `json:"data,omitempty"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

// GraphQLHandlers dispatches graph-query documents to plain resolvers.
// The transport stays a single POST endpoint; each resolver is an ordinary
// request handler over the query/mutation services.
type GraphQLHandlers struct {
	querySvc    services.QueryService
	customerSvc services.CustomerService
	productSvc  services.ProductService
	orderSvc    services.OrderService
}

func NewGraphQLHandlers(querySvc services.QueryService, customerSvc services.CustomerService, productSvc services.ProductService, orderSvc services.OrderService) *GraphQLHandlers {
	return &GraphQLHandlers{
		querySvc:    querySvc,
		customerSvc: customerSvc,
		productSvc:  productSvc,
		orderSvc:    orderSvc,
	}
}

// The first identifier inside the top-level selection set names the
// operation. That is all the document parsing this boundary needs.
var operationPattern = regexp.MustCompile(`\{\s*([A-Za-z_][A-Za-z0-9_]*)`)

func operationField(document string) string {
	match := operationPattern.FindStringSubmatch(document)
	if match == nil {
		return ""
	}
	return match[1]
}

func decodeVariable[T any](variables map[string]json.RawMessage, name string) (T, error) {
	var value T
	raw, ok := variables[name]
	if !ok {
		return value, fmt.Errorf("missing variable %q", name)
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, fmt.Errorf("invalid variable %q: %v", name, err)
	}
	return value, nil
}

func graphError(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, GraphQLResponse{Errors: []GraphQLError{{Message: message}}})
}

// Execute handles POST /graphql.
func (h *GraphQLHandlers) Execute(c echo.Context) error {
	var req GraphQLRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	op := operationField(req.Query)
	if op == "" {
		return graphError(c, "Unable to parse operation from query document")
	}

	ctx := c.Request().Context()
	var result any
	var err error

	switch op {
	case "hello":
		result = "Hello, GraphQL!"

	case "__schema":
		result = map[string]any{"queryType": map[string]any{"name": "Query"}}

	case "allCustomers":
		filter := &models.CustomerFilter{}
		if raw, ok := req.Variables["nameContains"]; ok {
			_ = json.Unmarshal(raw, &filter.NameContains)
		}
		if raw, ok := req.Variables["emailContains"]; ok {
			_ = json.Unmarshal(raw, &filter.EmailContains)
		}
		var customers []*models.Customer
		customers, err = h.querySvc.ListCustomers(ctx, filter)
		if customers == nil {
			customers = []*models.Customer{}
		}
		result = customers

	case "allProducts":
		var products []*models.Product
		products, err = h.querySvc.ListProducts(ctx)
		if products == nil {
			products = []*models.Product{}
		}
		result = products

	case "allOrders":
		var orders []*models.Order
		orders, err = h.querySvc.ListOrders(ctx)
		if orders == nil {
			orders = []*models.Order{}
		}
		result = orders

	case "lowStockProducts":
		var products []*models.Product
		products, err = h.querySvc.ListLowStockProducts(ctx)
		if products == nil {
			products = []*models.Product{}
		}
		result = products

	case "customer":
		var id string
		if id, err = decodeVariable[string](req.Variables, "id"); err == nil {
			var customer *models.Customer
			customer, err = h.querySvc.GetCustomer(ctx, id)
			result = customer
		}

	case "product":
		var id string
		if id, err = decodeVariable[string](req.Variables, "id"); err == nil {
			var product *models.Product
			product, err = h.querySvc.GetProduct(ctx, id)
			result = product
		}

	case "order":
		var id string
		if id, err = decodeVariable[string](req.Variables, "id"); err == nil {
			var order *models.Order
			order, err = h.querySvc.GetOrder(ctx, id)
			result = order
		}

	case "createCustomer":
		var input *models.CreateCustomerInput
		if input, err = decodeVariable[*models.CreateCustomerInput](req.Variables, "input"); err == nil {
			result = h.customerSvc.Create(ctx, input)
		}

	case "bulkCreateCustomers":
		var inputs []*models.CreateCustomerInput
		if inputs, err = decodeVariable[[]*models.CreateCustomerInput](req.Variables, "input"); err == nil {
			result = h.customerSvc.BulkCreate(ctx, inputs)
		}

	case "createProduct":
		var input *models.CreateProductInput
		if input, err = decodeVariable[*models.CreateProductInput](req.Variables, "input"); err == nil {
			result = h.productSvc.Create(ctx, input)
		}

	case "createOrder":
		var input *models.CreateOrderInput
		if input, err = decodeVariable[*models.CreateOrderInput](req.Variables, "input"); err == nil {
			result = h.orderSvc.Create(ctx, input)
		}

	case "updateLowStockProducts":
		result = h.productSvc.RestockLowStock(ctx)

	default:
		return graphError(c, fmt.Sprintf("Unknown operation: %s", op))
	}

	if err != nil {
		return graphError(c, err.Error())
	}

	return c.JSON(http.StatusOK, GraphQLResponse{Data: map[string]any{op: result}})
}
