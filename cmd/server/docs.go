package main

// @title User Service API
// @version 1.0
// @description REST service exposing CRUD operations on user records backed by PostgreSQL.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @tag.name Users
// @tag.description User CRUD endpoints

// @tag.name Health
// @tag.description Health check endpoints
