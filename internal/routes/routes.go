package routes

const (
	// Health
	Health = "/health"

	// Customers
	CustomersBase = "/api/v1/customers"
	CustomerByID  = "/api/v1/customers/{id}"

	// Products
	ProductsBase = "/api/v1/products"
	ProductByID  = "/api/v1/products/{id}"

	// Orders
	OrdersBase    = "/api/v1/orders"
	OrderByID     = "/api/v1/orders/{id}"
	OrderComplete = "/api/v1/orders/{id}/complete"
	OrderCancel   = "/api/v1/orders/{id}/cancel"

	// Back-office users
	UsersBase        = "/api/v1/users"
	UsersDisable     = "/api/v1/users/disable"
	UsersSetPassword = "/api/v1/users/set-password"
	UsersLogin       = "/api/v1/users/login"

	// Audit
	ActionsBase = "/api/v1/actions"
	ActionByID  = "/api/v1/actions/{id}"
)
