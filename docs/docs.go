// Package docs holds the hand-maintained swagger document served at /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/user/create/": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Register a new user",
                "parameters": [
                    {
                        "description": "Registration data",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.CreateUserRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.UserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}
                }
            }
        },
        "/user/token/": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Obtain an auth token",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.TokenRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}
                }
            }
        },
        "/user/me/": {
            "get": {
                "security": [{"TokenAuth": []}],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Get the authenticated user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"TokenAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Update the authenticated user",
                "parameters": [
                    {
                        "description": "Fields to change",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.UpdateUserRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/recipe/tags/": {
            "get": {
                "security": [{"TokenAuth": []}],
                "produces": ["application/json"],
                "tags": ["recipe"],
                "summary": "List the caller's tags",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Tag"}}}
                }
            },
            "post": {
                "security": [{"TokenAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["recipe"],
                "summary": "Create a tag",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.AttributeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Tag"}}
                }
            }
        },
        "/recipe/ingredients/": {
            "get": {
                "security": [{"TokenAuth": []}],
                "produces": ["application/json"],
                "tags": ["recipe"],
                "summary": "List the caller's ingredients",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Ingredient"}}}
                }
            },
            "post": {
                "security": [{"TokenAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["recipe"],
                "summary": "Create an ingredient",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.AttributeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Ingredient"}}
                }
            }
        },
        "/recipe/recipes/": {
            "get": {
                "security": [{"TokenAuth": []}],
                "produces": ["application/json"],
                "tags": ["recipe"],
                "summary": "List the caller's recipes",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.RecipeSummary"}}}
                }
            },
            "post": {
                "security": [{"TokenAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["recipe"],
                "summary": "Create a recipe",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RecipeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.RecipeSummary"}}
                }
            }
        },
        "/recipe/recipes/{id}/": {
            "get": {
                "security": [{"TokenAuth": []}],
                "produces": ["application/json"],
                "tags": ["recipe"],
                "summary": "Get one of the caller's recipes",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.RecipeDetail"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"TokenAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["recipe"],
                "summary": "Replace a recipe; omitted tags, ingredients and link are cleared",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RecipeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.RecipeSummary"}}
                }
            },
            "patch": {
                "security": [{"TokenAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["recipe"],
                "summary": "Change the sent fields of a recipe",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RecipeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.RecipeSummary"}}
                }
            },
            "delete": {
                "security": [{"TokenAuth": []}],
                "tags": ["recipe"],
                "summary": "Delete a recipe",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/recipe/recipes/{id}/upload-image/": {
            "post": {
                "security": [{"TokenAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["recipe"],
                "summary": "Attach an image to a recipe",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "file", "name": "image", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.RecipeImageResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "detail": {"type": "string"}}
        },
        "handler.AttributeRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string", "maxLength": 255}}
        },
        "handler.CreateUserRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string", "maxLength": 255},
                "password": {"type": "string", "minLength": 5}
            }
        },
        "handler.RecipeDetail": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "image": {"type": "string"},
                "ingredients": {"type": "array", "items": {"$ref": "#/definitions/model.Ingredient"}},
                "link": {"type": "string"},
                "price": {"type": "string", "example": "5.00"},
                "tags": {"type": "array", "items": {"$ref": "#/definitions/model.Tag"}},
                "time_minutes": {"type": "integer"},
                "title": {"type": "string"}
            }
        },
        "handler.RecipeImageResponse": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "image": {"type": "string"}}
        },
        "handler.RecipeRequest": {
            "type": "object",
            "properties": {
                "ingredients": {"type": "array", "items": {"type": "integer"}},
                "link": {"type": "string"},
                "price": {"type": "string", "example": "5.00"},
                "tags": {"type": "array", "items": {"type": "integer"}},
                "time_minutes": {"type": "integer"},
                "title": {"type": "string"}
            }
        },
        "handler.RecipeSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "ingredients": {"type": "array", "items": {"type": "integer"}},
                "link": {"type": "string"},
                "price": {"type": "string", "example": "5.00"},
                "tags": {"type": "array", "items": {"type": "integer"}},
                "time_minutes": {"type": "integer"},
                "title": {"type": "string"}
            }
        },
        "handler.TokenRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.TokenResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        },
        "handler.UpdateUserRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "password": {"type": "string", "minLength": 5}}
        },
        "handler.UserResponse": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "name": {"type": "string"}}
        },
        "model.Ingredient": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "name": {"type": "string"}}
        },
        "model.Tag": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "name": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "TokenAuth": {
            "description": "Token authentication. Example: \"Token 9944b09199c62bcf9418ad846dd0e4bbdfc6ee4b\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Recipe API",
	Description:      "Recipe management backend with per-user tags, ingredients and recipes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
