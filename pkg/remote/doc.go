// Package remote connects the console watcher to an MQTT broker.
package remote

// The agent mirrors the device console onto a message queue: while
// connected it keeps a retained meta document for discovery,
// publishes every watcher transition as a JSON event, and accepts
// key injection commands, so an operator can walk a whole fleet of
// devices through the reboot confirmation without a serial cable to
// each one. The console itself never depends on this layer and keeps
// working when no broker is configured.
//
// Topics relative to the broker URL prefix:
//
//	<type>/<id>/meta  retained registration, cleared on shutdown
//	<type>/<id>/msg   watcher events
//	<type>/<id>/cmd   key injection commands
//
// Producer: console watcher
// Consumer: operator tooling (bootmon, fleet automation)
