// Package discovery centralizes in-network service address conventions.
package discovery

import (
	"strconv"
	"strings"
)

const (
	// ServiceWeb is the browser-facing HTTP service identity.
	ServiceWeb = "web"
	// ServiceCatalog is the catalog service identity.
	ServiceCatalog = "catalog"
)

var grpcPorts = map[string]int{
	ServiceCatalog: 8092,
}

var httpPorts = map[string]int{
	ServiceWeb:     8080,
	ServiceCatalog: 8091,
}

// DefaultGRPCAddr returns the canonical in-network gRPC address for a service.
func DefaultGRPCAddr(service string) string {
	return defaultAddr(strings.TrimSpace(service), grpcPorts)
}

// DefaultHTTPAddr returns the canonical in-network HTTP address for a service.
func DefaultHTTPAddr(service string) string {
	return defaultAddr(strings.TrimSpace(service), httpPorts)
}

// OrDefaultHTTPBaseURL returns value when set, otherwise http://<service-host:port>.
func OrDefaultHTTPBaseURL(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	addr := DefaultHTTPAddr(service)
	if addr == "" {
		return ""
	}
	return "http://" + addr
}

func defaultAddr(service string, ports map[string]int) string {
	port, ok := ports[service]
	if !ok || port <= 0 {
		return ""
	}
	return service + ":" + strconv.Itoa(port)
}
