package constants

const AppName = "order-management"

// Dot-separated response codes carried on every envelope. The families are
// stable API: 100/200 success, 6XX domain not-found/mutation failures,
// 800 action-log failures, 999 validation and unhandled errors.
const (
	CodeSuccess   = "100.000.000"
	CodeRetrieved = "200.000.000"

	// Default status_code an action carries between open and close.
	CodePendingStatus = "000.000.000"

	CodeActionLogFailed = "800.001.001"
	CodeNoActionsFound  = "800.002.404"
	CodeException       = "999.999.999"

	CodeInvalidField = "999.002.006"
	CodeInvalidID    = "999.005.006"

	// Users
	CodeUserCreateFailed = "600.001.001"
	CodeUserNotFound     = "600.001.002"
	CodeUserUpdateFailed = "600.001.007"
	CodeUsersNotFound    = "600.001.404"

	// Customers
	CodeCustomerCreateFailed = "600.002.001"
	CodeCustomerNotFound     = "600.002.002"
	CodeCustomerUpdateFailed = "600.002.007"
	CodeCustomersNotFound    = "600.002.404"

	// Products
	CodeProductCreateFailed = "600.003.001"
	CodeProductNotFound     = "600.003.002"
	CodeProductUpdateFailed = "600.003.007"
	CodeProductsNotFound    = "600.003.404"

	// Orders
	CodeOrderCreateFailed = "600.004.001"
	CodeOrderNotFound     = "600.004.002"
	CodeOrderUpdateFailed = "600.004.007"
	CodeOrdersNotFound    = "600.004.404"
)

// Names of the action types provisioned at startup. Every mutating operation
// resolves one of these before doing any work.
const (
	ActionAddCustomer    = "Add Customer"
	ActionEditCustomer   = "Edit Customer"
	ActionGetCustomer    = "Get Customer"
	ActionDeleteCustomer = "Delete Customer"

	ActionAddProduct    = "Add Product"
	ActionEditProduct   = "Edit Product"
	ActionGetProduct    = "Get Product"
	ActionDeleteProduct = "Delete Product"

	ActionPlaceOrder    = "Place Order"
	ActionCompleteOrder = "Complete Order"
	ActionGetOrder      = "Get Order"
	ActionCancelOrder   = "Cancel Order"

	ActionAddUser     = "Add User"
	ActionEditUser    = "Edit User"
	ActionGetUser     = "Get User"
	ActionDisableUser = "Disable User"
	ActionSetPassword = "Set Password"
	ActionUserLogin   = "User Login"

	ActionGetAllActions = "Get All Actions"
	ActionGetAction     = "Get Action"
)

// AllActionTypes drives the idempotent seeding pass.
var AllActionTypes = []string{
	ActionAddCustomer, ActionEditCustomer, ActionGetCustomer, ActionDeleteCustomer,
	ActionAddProduct, ActionEditProduct, ActionGetProduct, ActionDeleteProduct,
	ActionPlaceOrder, ActionCompleteOrder, ActionGetOrder, ActionCancelOrder,
	ActionAddUser, ActionEditUser, ActionGetUser, ActionDisableUser, ActionSetPassword, ActionUserLogin,
	ActionGetAllActions, ActionGetAction,
}
