// Package grpc exposes the standard gRPC health service so orchestrators
// can probe ListService without speaking HTTP.
package grpc
