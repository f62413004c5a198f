package main

// @title           Finbook API
// @version         1.0
// @description     Personal finance ledger backend
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token
func main() {
	Execute()
}
