// Package http implements the calculator's HTTP handlers.
//
// Routes:
//
//	GET  /            prompt page
//	GET  /styles.css  page stylesheet
//	GET  /script.js   page script
//	POST /generate    {"prompt": "..."} -> {"response": "..."}
//	POST /continue    {"seed": "...", "length": n} -> {"response": "..."}
//	GET  /health      instance status
//
// Request errors are returned as {"error": "..."} with status 400.
package http
