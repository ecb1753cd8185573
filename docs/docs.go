// Package docs holds the swagger document served at /swagger/*.
// Regenerate with: swag init -g cmd/skyroute/serve.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "lintang birda saputra"
        },
        "license": {
            "name": "GNU Affero General Public License v3.0",
            "url": "https://www.gnu.org/licenses/gpl-3.0.en.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/flights/search": {
            "get": {
                "description": "cari rute penerbangan optimal (cheapest, fastest, layover) antara dua bandara. Rute yang melewati restricted zone tidak pernah dipakai.",
                "produces": ["application/json"],
                "tags": ["flights"],
                "summary": "cari rute penerbangan optimal yang tidak melewati restricted zone",
                "parameters": [
                    {"type": "string", "description": "kode IATA bandara asal", "name": "source", "in": "query", "required": true},
                    {"type": "string", "description": "kode IATA bandara tujuan", "name": "destination", "in": "query", "required": true},
                    {"type": "string", "description": "cheapest | fastest | layover (default cheapest)", "name": "criteria", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/rest.SearchFlightsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/rest.ErrResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/rest.SearchFlightsResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/rest.SearchFlightsResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/rest.ErrResponse"}}
                }
            }
        },
        "/flights/airports": {
            "get": {
                "produces": ["application/json"],
                "tags": ["flights"],
                "summary": "semua bandara di graph snapshot saat ini",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/datastructure.Airport"}}}
                }
            }
        },
        "/flights/restricted-zones": {
            "get": {
                "produces": ["application/json"],
                "tags": ["flights"],
                "summary": "semua restricted zone",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/rest.RestrictedZoneResponse"}}}
                }
            }
        },
        "/airports/search": {
            "get": {
                "description": "cari bandara (case-insensitive), minimal 2 karakter, maksimal 10 hasil",
                "produces": ["application/json"],
                "tags": ["airports"],
                "summary": "cari bandara berdasarkan kode IATA, nama, atau kota",
                "parameters": [
                    {"type": "string", "description": "kata kunci", "name": "query", "in": "query", "required": true},
                    {"type": "integer", "description": "jumlah hasil maksimal (<= 10)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/datastructure.Airport"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/rest.ErrResponse"}}
                }
            }
        },
        "/airports/nearby": {
            "get": {
                "description": "bandara dalam radius (km) dari koordinat, diurutkan dari yang terdekat. Pakai h3 grid disk.",
                "produces": ["application/json"],
                "tags": ["airports"],
                "summary": "bandara terdekat dari sebuah koordinat",
                "parameters": [
                    {"type": "number", "description": "latitude", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "longitude", "name": "lon", "in": "query", "required": true},
                    {"type": "number", "description": "radius km (default 100)", "name": "radius", "in": "query"},
                    {"type": "integer", "description": "jumlah hasil maksimal (default 10)", "name": "k", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/geo.NearbyAirport"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/rest.ErrResponse"}}
                }
            }
        },
        "/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "statistik graph snapshot saat ini",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Stats"}}
                }
            }
        }
    },
    "definitions": {
        "datastructure.Airport": {
            "type": "object",
            "properties": {
                "iataCode": {"type": "string"},
                "name": {"type": "string"},
                "city": {"type": "string"},
                "country": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"}
            }
        },
        "datastructure.FlightSegment": {
            "type": "object",
            "properties": {
                "sourceCode": {"type": "string"},
                "sourceName": {"type": "string"},
                "sourceCountry": {"type": "string"},
                "sourceLatitude": {"type": "number"},
                "sourceLongitude": {"type": "number"},
                "destCode": {"type": "string"},
                "destName": {"type": "string"},
                "destCountry": {"type": "string"},
                "destLatitude": {"type": "number"},
                "destLongitude": {"type": "number"},
                "airline": {"type": "string"},
                "price": {"type": "number"},
                "durationMinutes": {"type": "integer"}
            }
        },
        "geo.NearbyAirport": {
            "type": "object",
            "properties": {
                "airport": {"$ref": "#/definitions/datastructure.Airport"},
                "distanceKm": {"type": "number"}
            }
        },
        "rest.ErrResponse": {
            "description": "model untuk error response",
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "error": {"type": "string"},
                "status": {"type": "string"},
                "validation": {"type": "array", "items": {"type": "string"}}
            }
        },
        "rest.RestrictedZoneResponse": {
            "description": "restricted zone, coordinates berupa pasangan [lat, lon]",
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "coordinates": {"type": "array", "items": {"type": "array", "items": {"type": "number"}}}
            }
        },
        "rest.SearchFlightsResponse": {
            "description": "hasil pencarian rute. polyline berisi encoded path antar bandara",
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "segments": {"type": "array", "items": {"$ref": "#/definitions/datastructure.FlightSegment"}},
                "totalPrice": {"type": "number"},
                "totalDuration": {"type": "integer"},
                "totalStops": {"type": "integer"},
                "reason": {"type": "string", "enum": ["None", "NoRoute", "RestrictedZoneBlock"]},
                "message": {"type": "string"},
                "polyline": {"type": "string"}
            }
        },
        "service.Stats": {
            "type": "object",
            "properties": {
                "version": {"type": "string"},
                "airports": {"type": "integer"},
                "routes": {"type": "integer"},
                "zones": {"type": "integer"},
                "builtAt": {"type": "string"},
                "build": {
                    "type": "object",
                    "properties": {
                        "airports": {"type": "integer"},
                        "duplicateAirports": {"type": "integer"},
                        "routes": {"type": "integer"},
                        "danglingRoutes": {"type": "integer"},
                        "blockedRoutes": {"type": "integer"},
                        "admissibleRoutes": {"type": "integer"},
                        "zones": {"type": "integer"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "skyroute API",
	Description:      "flight route engine that never routes through restricted airspace. Dijkstra over a zone-filtered airport graph.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
