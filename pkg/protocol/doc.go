// Package protocol defines the JSON messages exchanged with the browser
// client over the WebSocket connection.
//
// Every message is a JSON object with a "type" field. The client sends:
//
//	{"type":"show","ref":"r1","options":{"toastMsg":"Saved","type":"success"}}
//	{"type":"update","id":"toast-…","options":{"theme":"dark"}}
//	{"type":"remove","id":"toast-…"}
//	{"type":"event","id":"toast-…","event":"click"}
//	{"type":"visibility","state":"hidden"}
//
// and the server answers with:
//
//	{"type":"shown","ref":"r1","id":"toast-…"}
//	{"type":"render","seq":7,"html":"<div class=\"toast-container …"}
//	{"type":"error","code":"T202","error":"Toast not found"}
//
// Render messages carry the complete body markup; seq increases by one per
// render so the client can drop stale frames.
package protocol
