/*
Package api provides a simple way to register HTTP API endpoints. You can of course also register raw `http.Handler`s directly.

Endpoints are served below /api/v1/ by the API module. Their functions receive a Request with the URL variables extracted by the router and return a message, raw data or a struct, which is encoded according to the Accept header of the request.
*/
package api
