package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Cemetery Console API",
        "description": "JSON endpoints of the cemetery records console. Authenticated with the console session cookie.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Niches", "description": "Niche map, assignment and release"},
        {"name": "Bodies", "description": "Bodies register"},
        {"name": "Probes", "description": "Liveness and readiness"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Probes"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Probes"],
                "summary": "Readiness probe pinging every backend",
                "responses": {
                    "200": {"description": "Ready", "schema": {"$ref": "#/definitions/ReadinessReport"}},
                    "503": {"description": "A backend is unreachable", "schema": {"$ref": "#/definitions/ReadinessReport"}}
                }
            }
        },
        "/api/v1/niches": {
            "get": {
                "tags": ["Niches"],
                "summary": "Niche grid with occupancy statistics",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Backend failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/niches/{codigo}": {
            "get": {
                "tags": ["Niches"],
                "summary": "Niche reconciled with its occupant",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "codigo", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown niche", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/niches/assign": {
            "post": {
                "tags": ["Niches"],
                "summary": "Assign a body to a niche",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NicheAssignmentInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/niches/{codigo}/release": {
            "post": {
                "tags": ["Niches"],
                "summary": "Release an occupied niche",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "codigo", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Niche already released", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/niches/{codigo}/maintenance": {
            "post": {
                "tags": ["Niches"],
                "summary": "Toggle maintenance on a free niche",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "codigo", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Niche is occupied", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/bodies": {
            "get": {
                "tags": ["Bodies"],
                "summary": "List bodies",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "q", "in": "query", "type": "string", "description": "Search over name, surname, document, id and protocol"},
                    {"name": "estado", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "NicheAssignmentInput": {
            "type": "object",
            "required": ["codigoNicho", "idCadaver"],
            "properties": {
                "codigoNicho": {"type": "string"},
                "idCadaver": {"type": "string"}
            }
        },
        "BackendHealth": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "url": {"type": "string"},
                "reachable": {"type": "boolean"},
                "status_code": {"type": "integer"},
                "duration": {"type": "integer"},
                "error": {"type": "string"},
                "observed_at": {"type": "string"}
            }
        },
        "ReadinessReport": {
            "type": "object",
            "properties": {
                "ready": {"type": "boolean"},
                "backends": {"type": "array", "items": {"$ref": "#/definitions/BackendHealth"}}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
