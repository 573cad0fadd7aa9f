// Package docs holds the OpenAPI document served under /swagger. It is
// registered with swag at init so gin-swagger can find it.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/identifiers/normalize": {
            "post": {
                "security": [{"ApiKeyAuth": []}, {"BearerAuth": []}],
                "description": "Returns the canonical form: ISBN-13 for ISBNs, eight characters for ISSNs and the LoC normalized form for LCCNs.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["identifiers"],
                "summary": "Normalize an identifier",
                "parameters": [
                    {
                        "description": "Identifier",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/main.NormalizeRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.NormalizeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.APIError"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            }
        },
        "/identifiers/{kind}": {
            "get": {
                "security": [{"ApiKeyAuth": []}, {"BearerAuth": []}],
                "description": "Validates an ISBN, ISSN or LCCN and reports its normalized form, check character and ISBN conversions. Invalid identifiers are reported with valid=false.",
                "produces": ["application/json"],
                "tags": ["identifiers"],
                "summary": "Inspect an identifier",
                "parameters": [
                    {"type": "string", "description": "isbn, issn, lccn or auto", "name": "kind", "in": "path", "required": true},
                    {"type": "string", "description": "Identifier as entered", "name": "id", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.IdentifierResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.APIError"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            }
        },
        "/isbn/convert": {
            "post": {
                "security": [{"ApiKeyAuth": []}, {"BearerAuth": []}],
                "description": "Converts between ISBN-10 and ISBN-13. ISBN-13s with the 979 prefix have no ISBN-10 form.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["isbn"],
                "summary": "Convert an ISBN",
                "parameters": [
                    {
                        "description": "ISBN and target form",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/main.ConvertRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.ConvertResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.APIError"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            }
        },
        "/marc/identifiers": {
            "post": {
                "security": [{"ApiKeyAuth": []}, {"BearerAuth": []}],
                "description": "Parses an ISO 2709 or MARC-in-JSON record and inspects every LCCN, ISBN and ISSN subfield $a and $z.",
                "consumes": ["application/marc"],
                "produces": ["application/json"],
                "tags": ["marc"],
                "summary": "Extract identifiers from a MARC record",
                "parameters": [
                    {"type": "string", "description": "marc21, unimarc or cnmarc", "name": "profile", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.MARCResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.APIError"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            }
        }
    },
    "definitions": {
        "identifier.Result": {
            "type": "object",
            "properties": {
                "checkdigit": {"type": "string"},
                "error": {"type": "string"},
                "input": {"type": "string"},
                "isbn10": {"type": "string"},
                "isbn13": {"type": "string"},
                "kind": {"type": "string"},
                "normalized": {"type": "string"},
                "valid": {"type": "boolean"}
            }
        },
        "main.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "detail": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "main.ConvertRequest": {
            "type": "object",
            "required": ["identifier", "to"],
            "properties": {
                "identifier": {"type": "string"},
                "to": {"type": "string", "enum": ["10", "13"]}
            }
        },
        "main.ConvertResponse": {
            "type": "object",
            "properties": {
                "isbn": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "main.IdentifierResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/identifier.Result"},
                "status": {"type": "string"}
            }
        },
        "main.MARCResponse": {
            "type": "object",
            "properties": {
                "identifiers": {"type": "array", "items": {"$ref": "#/definitions/marc.Extracted"}},
                "profile": {"type": "string"},
                "record_id": {"type": "string"},
                "status": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "main.NormalizeRequest": {
            "type": "object",
            "required": ["identifier"],
            "properties": {
                "identifier": {"type": "string"},
                "kind": {"type": "string"}
            }
        },
        "main.NormalizeResponse": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "normalized": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "marc.Extracted": {
            "type": "object",
            "properties": {
                "cancelled": {"type": "boolean"},
                "checkdigit": {"type": "string"},
                "error": {"type": "string"},
                "input": {"type": "string"},
                "isbn10": {"type": "string"},
                "isbn13": {"type": "string"},
                "kind": {"type": "string"},
                "normalized": {"type": "string"},
                "subfield": {"type": "string"},
                "tag": {"type": "string"},
                "valid": {"type": "boolean"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"},
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8899",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Open StdNum Gateway API",
	Description:      "Validation, normalization and conversion of ISBN, ISSN and LCCN identifiers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
