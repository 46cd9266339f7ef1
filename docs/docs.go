// Package docs holds the OpenAPI document served under /swagger. Regenerate
// with `swag init -g cmd/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/sign-up": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign up",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "username taken"}
                }
            }
        },
        "/auth/sign-in": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/api/v1/pumps": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["pumps"],
                "summary": "List pumps",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/fuel_pump_registry.PumpListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/fuel_pump_registry.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pumps"],
                "summary": "Create pump",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/fuel_pump_registry.PumpRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.FuelPump"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/fuel_pump_registry.ErrorResponse"}}
                }
            }
        },
        "/api/v1/pumps/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["pumps"],
                "summary": "Get pump",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.FuelPump"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/fuel_pump_registry.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pumps"],
                "summary": "Update pump",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/fuel_pump_registry.PumpRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.FuelPump"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/fuel_pump_registry.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/fuel_pump_registry.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["pumps"],
                "summary": "Delete pump",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "the removed pump", "schema": {"$ref": "#/definitions/models.FuelPump"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/fuel_pump_registry.ErrorResponse"}}
                }
            }
        },
        "/api/v1/pumps/{id}/dispense": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pumps"],
                "summary": "Dispense fuel",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/fuel_pump_registry.DispenseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.FuelPump"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/fuel_pump_registry.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/fuel_pump_registry.ErrorResponse"}},
                    "409": {"description": "pump not Active or not enough fuel", "schema": {"$ref": "#/definitions/fuel_pump_registry.ErrorResponse"}}
                }
            }
        },
        "/api/v1/pumps/{id}/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["pumps"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/fuel_pump_registry.TransactionListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/fuel_pump_registry.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/fuel_pump_registry.ErrorResponse"}}
                }
            }
        },
        "/api/v1/pumps/{id}/status": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pumps"],
                "summary": "Set pump status",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/fuel_pump_registry.StatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.FuelPump"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/fuel_pump_registry.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/fuel_pump_registry.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.authCredentials": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {"password": {"type": "string"}, "username": {"type": "string"}}
        },
        "fuel_pump_registry.PumpRequest": {
            "type": "object",
            "required": ["fuelQuantity", "fuelType", "pumpNumber"],
            "properties": {
                "pumpNumber": {"type": "integer", "example": 1},
                "fuelType": {"type": "string", "example": "Regular"},
                "fuelQuantity": {"type": "number", "example": 1000}
            }
        },
        "fuel_pump_registry.DispenseRequest": {
            "type": "object",
            "required": ["quantity"],
            "properties": {"quantity": {"type": "number", "example": 25.5}}
        },
        "fuel_pump_registry.StatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {"status": {"type": "string", "example": "Maintenance"}}
        },
        "fuel_pump_registry.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "fuel_pump_registry.PumpListResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "pumps": {"type": "array", "items": {"$ref": "#/definitions/models.FuelPump"}}
            }
        },
        "fuel_pump_registry.TransactionListResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/models.Transaction"}}
            }
        },
        "models.FuelPump": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "pumpNumber": {"type": "integer"},
                "fuelType": {"type": "string", "enum": ["Regular", "Premium", "Diesel"]},
                "fuelQuantity": {"type": "number"},
                "status": {"type": "string", "enum": ["Active", "Maintenance", "Out-of-Service"]},
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/models.Transaction"}},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.Transaction": {
            "type": "object",
            "properties": {
                "timestamp": {"type": "string"},
                "quantityDispensed": {"type": "number"},
                "user": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Fuel Pump Registry API",
	Description:      "Pump inventory, dispensing and status control.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
