package rpc

import (
	"crypto/tls"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"log/slog"
)

func CreateGrpcClient(address string, insecure bool) (*grpc.ClientConn, error) {
	if !insecure {
		return unaryInterceptorDialTls(address)
	}
	return unaryInterceptorDial(address)
}

// custom dial function for grpc requests.
func unaryInterceptorDialTls(address string) (*grpc.ClientConn, error) {
	// TLS against the system root certificates, negotiating h2.
	grpcOption := make([]grpc.DialOption, 0)
	h2creds := credentials.NewTLS(&tls.Config{NextProtos: []string{"h2"}})
	grpcOption = append(grpcOption, grpc.WithTransportCredentials(h2creds))
	return unaryInterceptorDial(address, grpcOption...)
}

func unaryInterceptorDial(address string, option ...grpc.DialOption) (*grpc.ClientConn, error) {
	// With no dial options given, connect without transport security.
	if option == nil {
		option = append(option, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	conn, err := grpc.Dial(address, option...)
	if err != nil {
		slog.Error("could not connect", "error", err, "address", address)
		return nil, err
	}
	return conn, nil
}
