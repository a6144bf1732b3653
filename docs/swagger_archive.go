package docs

// @title           Archive Service API
// @version         1.0
// @description     Stores generated mileage reports from the event stream and serves their history. Every endpoint except health requires an ADMIN bearer token.

// @host      localhost:3001
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
