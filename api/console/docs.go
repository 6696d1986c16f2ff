// Package console holds the generated Swagger documentation for the realm
// administration console API. Regenerate with:
//
//	swag init -g internal/admin/http/router.go -o api/console
package console

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
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Public"],
                "summary": "Public welcome",
                "responses": {
                    "200": {
                        "description": "Welcome message",
                        "schema": {"$ref": "#/definitions/consolesdk.MessageResponse"}
                    }
                }
            }
        },
        "/api/protected": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Public"],
                "summary": "Authenticated echo",
                "responses": {
                    "200": {
                        "description": "Caller identity",
                        "schema": {"$ref": "#/definitions/consolesdk.ProtectedResponse"}
                    },
                    "401": {
                        "description": "Invalid or missing access token",
                        "schema": {"$ref": "#/definitions/consolesdk.ErrorResponse"}
                    }
                }
            }
        },
        "/api/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "List users",
                "responses": {
                    "200": {
                        "description": "Users with roles",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/consolesdk.User"}}
                    },
                    "401": {
                        "description": "Invalid or missing access token",
                        "schema": {"$ref": "#/definitions/consolesdk.ErrorResponse"}
                    },
                    "500": {
                        "description": "Upstream provider failure",
                        "schema": {"$ref": "#/definitions/consolesdk.ErrorResponse"}
                    }
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Create user",
                "parameters": [
                    {
                        "description": "User to create",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/consolesdk.CreateUserRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created user, possibly with warning",
                        "schema": {"$ref": "#/definitions/consolesdk.CreateUserResponse"}
                    },
                    "400": {
                        "description": "Malformed request body",
                        "schema": {"$ref": "#/definitions/consolesdk.ErrorResponse"}
                    },
                    "403": {
                        "description": "Caller lacks the admin role",
                        "schema": {"$ref": "#/definitions/consolesdk.ErrorResponse"}
                    },
                    "409": {
                        "description": "Username or email already taken",
                        "schema": {"$ref": "#/definitions/consolesdk.ErrorResponse"}
                    }
                }
            }
        },
        "/api/users/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Delete user",
                "parameters": [
                    {"type": "string", "description": "User id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "User deleted"},
                    "403": {
                        "description": "Caller lacks the admin or manager role",
                        "schema": {"$ref": "#/definitions/consolesdk.ErrorResponse"}
                    },
                    "404": {
                        "description": "User not found",
                        "schema": {"$ref": "#/definitions/consolesdk.ErrorResponse"}
                    }
                }
            }
        },
        "/api/users/{id}/reset-password": {
            "put": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Password"],
                "summary": "Trigger password reset email",
                "parameters": [
                    {"type": "string", "description": "User id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "Reset triggered (possibly soft success)",
                        "schema": {"$ref": "#/definitions/consolesdk.MessageResponse"}
                    },
                    "403": {
                        "description": "Caller lacks the admin role",
                        "schema": {"$ref": "#/definitions/consolesdk.ErrorResponse"}
                    }
                }
            }
        },
        "/api/update-password": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Password"],
                "summary": "Update own password",
                "parameters": [
                    {
                        "description": "Current and new password",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/consolesdk.UpdatePasswordRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Password updated",
                        "schema": {"$ref": "#/definitions/consolesdk.MessageResponse"}
                    },
                    "400": {
                        "description": "Validation failure",
                        "schema": {"$ref": "#/definitions/consolesdk.ErrorResponse"}
                    },
                    "401": {
                        "description": "Incorrect current password or invalid token",
                        "schema": {"$ref": "#/definitions/consolesdk.ErrorResponse"}
                    }
                }
            }
        },
        "/api/users/me/mfa-status": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["MFA"],
                "summary": "Get own MFA status",
                "responses": {
                    "200": {
                        "description": "MFA status",
                        "schema": {"$ref": "#/definitions/consolesdk.MFAStatusResponse"}
                    }
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["MFA"],
                "summary": "Toggle own MFA",
                "parameters": [
                    {
                        "description": "Desired MFA state",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/consolesdk.SetMFAStatusRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Outcome message",
                        "schema": {"$ref": "#/definitions/consolesdk.MessageResponse"}
                    }
                }
            }
        },
        "/api/audit": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Audit"],
                "summary": "List audit entries",
                "parameters": [
                    {"type": "integer", "description": "Maximum entries to return (default 50)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "Audit entries",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/consolesdk.AuditEntry"}}
                    },
                    "403": {
                        "description": "Caller lacks the admin role",
                        "schema": {"$ref": "#/definitions/consolesdk.ErrorResponse"}
                    }
                }
            }
        },
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {
                        "description": "status, uptime, version",
                        "schema": {"$ref": "#/definitions/consolesdk.HealthResponse"}
                    }
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {
                        "description": "status, uptime, version, checks",
                        "schema": {"$ref": "#/definitions/consolesdk.HealthResponse"}
                    },
                    "503": {
                        "description": "service not ready",
                        "schema": {"$ref": "#/definitions/consolesdk.HealthResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "consolesdk.AuditEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "actorId": {"type": "string"},
                "actorUsername": {"type": "string"},
                "action": {"type": "string"},
                "targetId": {"type": "string"},
                "outcome": {"type": "string"},
                "detail": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "consolesdk.CreateUserRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "phoneNumber": {"type": "string"},
                "role": {"type": "string"},
                "sendInvitation": {"type": "boolean"}
            }
        },
        "consolesdk.CreateUserResponse": {
            "allOf": [
                {"$ref": "#/definitions/consolesdk.User"},
                {
                    "type": "object",
                    "properties": {"warning": {"type": "string"}}
                }
            ]
        },
        "consolesdk.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "consolesdk.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"},
                "checks": {
                    "type": "object",
                    "properties": {
                        "database": {"type": "string"},
                        "provider": {"type": "string"}
                    }
                }
            }
        },
        "consolesdk.MFAStatusResponse": {
            "type": "object",
            "properties": {"enabled": {"type": "boolean"}}
        },
        "consolesdk.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "consolesdk.ProtectedResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"type": "string"},
                "full_content": {"type": "object", "additionalProperties": true}
            }
        },
        "consolesdk.SetMFAStatusRequest": {
            "type": "object",
            "properties": {"enable": {"type": "boolean"}}
        },
        "consolesdk.UpdatePasswordRequest": {
            "type": "object",
            "properties": {
                "currentPassword": {"type": "string"},
                "newPassword": {"type": "string"}
            }
        },
        "consolesdk.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "enabled": {"type": "boolean"},
                "emailVerified": {"type": "boolean"},
                "attributes": {
                    "type": "object",
                    "additionalProperties": {"type": "array", "items": {"type": "string"}}
                },
                "roles": {"type": "array", "items": {"type": "string"}},
                "createdTimestamp": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT access token issued by the identity provider. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Realm Administration Console API",
	Description:      "Backend for a small identity administration console.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
