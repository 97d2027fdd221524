// Package docs registers the OpenAPI document served under /swagger.
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
        "/invocations": {
            "post": {
                "description": "Creates an invocation that asks Glue to start the configured crawler. Inputs are passed through unread.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invocations"],
                "summary": "Start the crawler",
                "parameters": [
                    {"description": "Invocation", "name": "invocation", "in": "body", "schema": {"$ref": "#/definitions/model.CreateInvocation"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.CreateInvocationSuccess"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/web.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/web.HTTPError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/web.HTTPError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/web.HTTPError"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/web.HTTPError"}}
                }
            }
        },
        "/crawler": {
            "get": {
                "produces": ["application/json"],
                "tags": ["crawler"],
                "summary": "Describe the crawler",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/crawler.Status"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/web.HTTPError"}}
                }
            }
        }
    },
    "definitions": {
        "crawler.LastCrawl": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "errorMessage": {"type": "string"},
                "startTime": {"type": "string"}
            }
        },
        "crawler.Status": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "state": {"type": "string"},
                "databaseName": {"type": "string"},
                "tablePrefix": {"type": "string"},
                "targets": {"type": "array", "items": {"type": "string"}},
                "lastCrawl": {"$ref": "#/definitions/crawler.LastCrawl"}
            }
        },
        "model.CreateInvocation": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "inputs": {"type": "object"}
            }
        },
        "model.CreateInvocationSuccess": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "crawler": {"type": "string"},
                "requestId": {"type": "string"}
            }
        },
        "web.HTTPError": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 409},
                "message": {"type": "string", "example": "aws client error in start_a_crawler: CrawlerRunningException: already running"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Peregrine Trigger API",
	Description:      "Starts and describes the Peregrine Glue crawler.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InfoInstanceName, SwaggerInfo)
}
