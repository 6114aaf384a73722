// Package audit carries commit outcome events out of the simulation.
// The engine itself never publishes; the driver emits one event per
// committed batch so operators can tail admission decisions. The
// Kafka producer is optional and replaced by a no-op sink when no
// brokers are configured.
package audit
