// Package brokerlog attaches structured, leveled logging to a message broker
// instance. It listens to the broker's lifecycle events and turns each one into
// a zerolog record:
//
//   - listeners report "listening" with the bound address and an inferred
//     protocol (tcp, tls, http, https)
//   - clients get a child logger carrying client.id when they connect, and
//     every later event for that client is logged through it
//   - subscribe, unsubscribe, client errors and publishes are logged with
//     event-specific fields and levels
//
// The broker itself (networking, MQTT parsing, routing) is not part of this
// package. Anything that implements Instance can be decorated; Hub is a small
// synchronous implementation for embedding and tests.
//
// Typical usage
//
//	hub := brokerlog.NewHub()
//	if _, err := brokerlog.Bind(brokerlog.Config{
//		Instance: hub,
//		Servers:  []brokerlog.Listener{tcpEndpoint, wsEndpoint},
//	}); err != nil {
//		panic(err)
//	}
//
//	hub.EmitClient(client)             // {"level":"info","client":{"id":"c1"},"msg":"connected"}
//	hub.EmitPublish(pub, client)       // {"level":"info","client":{"id":"c1"},"message":{...},"msg":"published"}
//	hub.EmitClientDisconnect(client)   // {"level":"info","client":{"id":"c1"},"msg":"disconnected"}
package brokerlog
