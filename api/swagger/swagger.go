package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Autoservice Booking API",
        "description": "Appointment slot suggestions and reservations for a vehicle workshop",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "CustomerToken": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Scheduling", "description": "Ranked appointment suggestions"},
        {"name": "Reservations", "description": "Committing and cancelling bookings"}
    ],
    "paths": {
        "/scheduling/hours": {
            "get": {
                "tags": ["Scheduling"],
                "summary": "List the workshop opening hours",
                "description": "Open weekdays in Monday-first order with their lunch blackout. Weekday 1 is Monday.",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/services": {
            "get": {
                "tags": ["Scheduling"],
                "summary": "List bookable services",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/scheduling/suggestions": {
            "get": {
                "tags": ["Scheduling"],
                "summary": "Suggest the best days and slots for a service",
                "security": [{"CustomerToken": []}],
                "parameters": [
                    {"name": "serviceId", "in": "query", "required": true, "type": "string"},
                    {"name": "quantity", "in": "query", "type": "integer"},
                    {"name": "startDate", "in": "query", "type": "string", "format": "date"},
                    {"name": "horizonDays", "in": "query", "type": "integer"},
                    {"name": "maxSuggestions", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown service", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Reservation store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/scheduling/suggestions/export": {
            "get": {
                "tags": ["Scheduling"],
                "summary": "Download suggestions as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "serviceId", "in": "query", "required": true, "type": "string"},
                    {"name": "quantity", "in": "query", "type": "integer"},
                    {"name": "startDate", "in": "query", "type": "string", "format": "date"},
                    {"name": "horizonDays", "in": "query", "type": "integer"},
                    {"name": "maxSuggestions", "in": "query", "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Attachment", "schema": {"type": "file"}}
                }
            }
        },
        "/scheduling/slots": {
            "get": {
                "tags": ["Scheduling"],
                "summary": "Rank the slots of one date",
                "security": [{"CustomerToken": []}],
                "parameters": [
                    {"name": "serviceId", "in": "query", "required": true, "type": "string"},
                    {"name": "quantity", "in": "query", "type": "integer"},
                    {"name": "date", "in": "query", "required": true, "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Date outside booking horizon", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reservations": {
            "post": {
                "tags": ["Reservations"],
                "summary": "Book a suggested slot",
                "security": [{"CustomerToken": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateReservationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slot no longer available", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reservations/{id}": {
            "delete": {
                "tags": ["Reservations"],
                "summary": "Cancel a reservation",
                "description": "Reservations held by a customer require that customer's bearer token.",
                "security": [{"CustomerToken": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateReservationRequest": {
            "type": "object",
            "required": ["customerId", "serviceId", "date", "startTime"],
            "properties": {
                "customerId": {"type": "string"},
                "serviceId": {"type": "string"},
                "quantity": {"type": "integer"},
                "date": {"type": "string", "format": "date"},
                "startTime": {"type": "string", "example": "10:00"},
                "value": {"type": "number"}
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
