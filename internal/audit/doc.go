// Package audit implements the audit logger for the Motion Control
// Container.
//
// The audit logger provides append-only JSONL records of every received
// datagram: sender, raw payload, action, outcome, latency and correlation
// ID. Files rotate by size via lumberjack.
package audit
