// Package docs registers the Swagger 2.0 document served at /swagger/*.
//
// The document is maintained by hand. Update docTemplate when a route or a
// model field changes.
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
        "/blogs": {
            "get": {
                "tags": [
                    "blogs"
                ],
                "summary": "List blogs",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "default": 100,
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "default": 0,
                        "name": "offset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "data": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/model.Blog"
                                    }
                                },
                                "total": {
                                    "type": "integer"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "blogs"
                ],
                "summary": "Create Blog",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.BlogInput"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/model.Blog"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/blogs/{id}": {
            "get": {
                "tags": [
                    "blogs"
                ],
                "summary": "Get Blog",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Blog"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "blogs"
                ],
                "summary": "Replace Blog",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.BlogInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Blog"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "blogs"
                ],
                "summary": "Partially update Blog",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.BlogInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Blog"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "blogs"
                ],
                "summary": "Delete Blog",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/entries": {
            "get": {
                "tags": [
                    "entries"
                ],
                "summary": "List entries",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "default": 100,
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "default": 0,
                        "name": "offset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "data": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/model.Entry"
                                    }
                                },
                                "total": {
                                    "type": "integer"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "entries"
                ],
                "summary": "Create Entry",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.EntryInput"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/model.Entry"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/entries/{id}": {
            "get": {
                "tags": [
                    "entries"
                ],
                "summary": "Get Entry",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Entry"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "entries"
                ],
                "summary": "Replace Entry",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.EntryInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Entry"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "entries"
                ],
                "summary": "Partially update Entry",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.EntryInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Entry"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "entries"
                ],
                "summary": "Delete Entry",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/authors": {
            "get": {
                "tags": [
                    "authors"
                ],
                "summary": "List authors",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "default": 100,
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "default": 0,
                        "name": "offset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "data": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/model.Author"
                                    }
                                },
                                "total": {
                                    "type": "integer"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "authors"
                ],
                "summary": "Create Author",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.AuthorInput"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/model.Author"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/authors/{id}": {
            "get": {
                "tags": [
                    "authors"
                ],
                "summary": "Get Author",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Author"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "authors"
                ],
                "summary": "Replace Author",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.AuthorInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Author"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "authors"
                ],
                "summary": "Partially update Author",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.AuthorInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Author"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "authors"
                ],
                "summary": "Delete Author",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/comments": {
            "get": {
                "tags": [
                    "comments"
                ],
                "summary": "List comments",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "default": 100,
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "default": 0,
                        "name": "offset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "data": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/model.Comment"
                                    }
                                },
                                "total": {
                                    "type": "integer"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "comments"
                ],
                "summary": "Create Comment",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.CommentInput"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/model.Comment"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/comments/{id}": {
            "get": {
                "tags": [
                    "comments"
                ],
                "summary": "Get Comment",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Comment"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "comments"
                ],
                "summary": "Replace Comment",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.CommentInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Comment"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "comments"
                ],
                "summary": "Partially update Comment",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.CommentInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Comment"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "comments"
                ],
                "summary": "Delete Comment",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/datum": {
            "get": {
                "tags": [
                    "datum"
                ],
                "summary": "List datum",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "default": 100,
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "default": 0,
                        "name": "offset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "data": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/model.ProfileDatum"
                                    }
                                },
                                "total": {
                                    "type": "integer"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "datum"
                ],
                "summary": "Create ProfileDatum",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.ProfileDatumInput"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/model.ProfileDatum"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/datum/{id}": {
            "get": {
                "tags": [
                    "datum"
                ],
                "summary": "Get ProfileDatum",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.ProfileDatum"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "datum"
                ],
                "summary": "Replace ProfileDatum",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.ProfileDatumInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.ProfileDatum"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "datum"
                ],
                "summary": "Partially update ProfileDatum",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.ProfileDatumInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.ProfileDatum"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "datum"
                ],
                "summary": "Delete ProfileDatum",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/categories": {
            "get": {
                "tags": [
                    "categories"
                ],
                "summary": "List categories",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "default": 100,
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "default": 0,
                        "name": "offset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "data": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/model.FacebookAdTargetingCategory"
                                    }
                                },
                                "total": {
                                    "type": "integer"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "categories"
                ],
                "summary": "Create FacebookAdTargetingCategory",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.FacebookAdTargetingCategoryInput"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/model.FacebookAdTargetingCategory"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/categories/{id}": {
            "get": {
                "tags": [
                    "categories"
                ],
                "summary": "Get FacebookAdTargetingCategory",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.FacebookAdTargetingCategory"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "categories"
                ],
                "summary": "Replace FacebookAdTargetingCategory",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.FacebookAdTargetingCategoryInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.FacebookAdTargetingCategory"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "categories"
                ],
                "summary": "Partially update FacebookAdTargetingCategory",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.FacebookAdTargetingCategoryInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.FacebookAdTargetingCategory"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "categories"
                ],
                "summary": "Delete FacebookAdTargetingCategory",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/targets": {
            "get": {
                "tags": [
                    "targets"
                ],
                "summary": "List targets",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "default": 100,
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "default": 0,
                        "name": "offset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "data": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/model.Target"
                                    }
                                },
                                "total": {
                                    "type": "integer"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "targets"
                ],
                "summary": "Create Target",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.TargetInput"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/model.Target"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/targets/{id}": {
            "get": {
                "tags": [
                    "targets"
                ],
                "summary": "Get Target",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Target"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "targets"
                ],
                "summary": "Replace Target",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.TargetInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Target"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "targets"
                ],
                "summary": "Partially update Target",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.TargetInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Target"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "targets"
                ],
                "summary": "Delete Target",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/profiles": {
            "get": {
                "tags": [
                    "profiles"
                ],
                "summary": "List profiles",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "default": 100,
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "default": 0,
                        "name": "offset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "data": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/model.Profile"
                                    }
                                },
                                "total": {
                                    "type": "integer"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "profiles"
                ],
                "summary": "Create Profile",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.ProfileInput"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/model.Profile"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/profiles/{id}": {
            "get": {
                "tags": [
                    "profiles"
                ],
                "summary": "Get Profile",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Profile"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "profiles"
                ],
                "summary": "Replace Profile",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.ProfileInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Profile"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "profiles"
                ],
                "summary": "Partially update Profile",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.ProfileInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Profile"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "profiles"
                ],
                "summary": "Delete Profile",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/authors/{id}/bio": {
            "get": {
                "tags": [
                    "authors"
                ],
                "summary": "Get an author's bio",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.AuthorBio"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "authors"
                ],
                "summary": "Create or replace an author's bio",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.AuthorBioInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.AuthorBio"
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "authors"
                ],
                "summary": "Delete an author's bio",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "tags": [
                    "health"
                ],
                "summary": "Database health check",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "503": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "tags": [
                    "health"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        }
    },
    "definitions": {
        "model.Blog": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "tagline": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "modified_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "model.BlogInput": {
            "type": "object",
            "required": [
                "name",
                "tagline"
            ],
            "properties": {
                "name": {
                    "type": "string",
                    "maxLength": 100
                },
                "tagline": {
                    "type": "string"
                }
            }
        },
        "model.Author": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "modified_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "model.AuthorInput": {
            "type": "object",
            "required": [
                "name",
                "email"
            ],
            "properties": {
                "name": {
                    "type": "string",
                    "maxLength": 50
                },
                "email": {
                    "type": "string",
                    "maxLength": 254
                }
            }
        },
        "model.AuthorBio": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "author": {
                    "type": "integer"
                },
                "body": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "modified_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "model.AuthorBioInput": {
            "type": "object",
            "required": [
                "body"
            ],
            "properties": {
                "body": {
                    "type": "string"
                }
            }
        },
        "model.Entry": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "blog": {
                    "type": "integer"
                },
                "headline": {
                    "type": "string"
                },
                "body_text": {
                    "type": "string"
                },
                "pub_date": {
                    "type": "string",
                    "format": "date",
                    "example": "2024-01-31"
                },
                "mod_date": {
                    "type": "string",
                    "format": "date",
                    "example": "2024-01-31"
                },
                "authors": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                },
                "n_comments": {
                    "type": "integer"
                },
                "n_pingbacks": {
                    "type": "integer"
                },
                "rating": {
                    "type": "integer"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "modified_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "model.EntryInput": {
            "type": "object",
            "required": [
                "blog",
                "headline"
            ],
            "properties": {
                "blog": {
                    "type": "integer"
                },
                "headline": {
                    "type": "string",
                    "maxLength": 255
                },
                "body_text": {
                    "type": "string"
                },
                "pub_date": {
                    "type": "string",
                    "format": "date",
                    "example": "2024-01-31"
                },
                "mod_date": {
                    "type": "string",
                    "format": "date",
                    "example": "2024-01-31"
                },
                "authors": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                },
                "n_comments": {
                    "type": "integer"
                },
                "n_pingbacks": {
                    "type": "integer"
                },
                "rating": {
                    "type": "integer"
                }
            }
        },
        "model.Comment": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "entry": {
                    "type": "integer"
                },
                "body": {
                    "type": "string"
                },
                "author": {
                    "type": "integer"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "modified_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "model.CommentInput": {
            "type": "object",
            "required": [
                "entry",
                "body"
            ],
            "properties": {
                "entry": {
                    "type": "integer"
                },
                "body": {
                    "type": "string"
                },
                "author": {
                    "type": "integer"
                }
            }
        },
        "model.Target": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "audience_id": {
                    "type": "integer"
                },
                "base_audience_id": {
                    "type": "integer"
                },
                "brand_id": {
                    "type": "integer"
                },
                "created": {
                    "type": "string",
                    "format": "date-time"
                },
                "creator": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "instagram_placement": {
                    "type": "boolean"
                },
                "latest_profile": {
                    "type": "integer"
                }
            }
        },
        "model.TargetInput": {
            "type": "object",
            "required": [
                "audience_id",
                "base_audience_id",
                "brand_id"
            ],
            "properties": {
                "audience_id": {
                    "type": "integer"
                },
                "base_audience_id": {
                    "type": "integer"
                },
                "brand_id": {
                    "type": "integer"
                },
                "creator": {
                    "type": "integer"
                },
                "name": {
                    "type": "string",
                    "maxLength": 191
                },
                "instagram_placement": {
                    "type": "boolean"
                },
                "latest_profile": {
                    "type": "integer"
                }
            }
        },
        "model.FacebookAdTargetingCategory": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "audience_type": {
                    "type": "string"
                },
                "platform_id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "path": {
                    "type": "string"
                },
                "last_updated": {
                    "type": "string",
                    "format": "date",
                    "example": "2024-01-31"
                }
            }
        },
        "model.FacebookAdTargetingCategoryInput": {
            "type": "object",
            "required": [
                "audience_type",
                "platform_id",
                "name"
            ],
            "properties": {
                "audience_type": {
                    "type": "string",
                    "maxLength": 128
                },
                "platform_id": {
                    "type": "string",
                    "maxLength": 128
                },
                "name": {
                    "type": "string",
                    "maxLength": 128
                },
                "description": {
                    "type": "string",
                    "maxLength": 256
                },
                "path": {
                    "type": "string",
                    "maxLength": 256
                }
            }
        },
        "model.Profile": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "target": {
                    "type": "integer"
                },
                "created": {
                    "type": "string",
                    "format": "date-time"
                },
                "audience_reach": {
                    "type": "integer"
                },
                "base_audience_reach": {
                    "type": "integer"
                },
                "bias_normalizer": {
                    "type": "boolean"
                }
            }
        },
        "model.ProfileInput": {
            "type": "object",
            "required": [
                "target",
                "audience_reach",
                "base_audience_reach"
            ],
            "properties": {
                "target": {
                    "type": "integer"
                },
                "audience_reach": {
                    "type": "integer"
                },
                "base_audience_reach": {
                    "type": "integer"
                },
                "bias_normalizer": {
                    "type": "boolean"
                }
            }
        },
        "model.ProfileDatum": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "category": {
                    "type": "integer"
                },
                "biased_index": {
                    "type": "number"
                },
                "unbiased_index": {
                    "type": "number"
                },
                "opportunity_score": {
                    "type": "number"
                },
                "reach_audience": {
                    "type": "integer"
                },
                "reach_base": {
                    "type": "integer"
                },
                "created_time": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "model.ProfileDatumInput": {
            "type": "object",
            "required": [
                "category",
                "biased_index",
                "opportunity_score",
                "reach_audience",
                "reach_base"
            ],
            "properties": {
                "category": {
                    "type": "integer"
                },
                "biased_index": {
                    "type": "number"
                },
                "unbiased_index": {
                    "type": "number"
                },
                "opportunity_score": {
                    "type": "number"
                },
                "reach_audience": {
                    "type": "integer"
                },
                "reach_base": {
                    "type": "integer"
                }
            }
        },
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "fields": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                }
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "request_id": {
                    "type": "string"
                },
                "error": {
                    "$ref": "#/definitions/handler.errorEnvelope"
                }
            }
        }
    }
}`

// SwaggerInfo is the registered spec; main sets Host and Schemes per request.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Example Content API",
	Description:      "Blogs, entries, authors, comments and audience profiling data.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
