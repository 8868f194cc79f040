// Package transport detects which MCP transport a remote server speaks.
//
// A server is probed with at most two requests. First an initialize
// JSON-RPC message is POSTed; a 2xx answer in JSON or as an event stream
// identifies the streamable HTTP transport. Otherwise a GET asks for an
// event stream, and the first frame decides between the legacy HTTP+SSE
// transport (an "endpoint" event) and streamable HTTP (anything else, or a
// 405 rejection of GET).
//
// Detection never fails: every network, timeout or parse problem ends in
// [KindUnknown]. Each request and the frame read are bounded by the same
// timeout, so a call takes at most about three times that long.
//
//	kind := transport.NewProber().Detect(ctx, transport.Request{
//	    URL:     "https://mcp.example.com/mcp",
//	    Headers: map[string]string{"Authorization": "Bearer ..."},
//	})
package transport
