package utils

import (
	"context"
	"fmt"
	"io"
	"net"
	"testing"
	"time"

	"traintrack/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendEmailRequiresConfiguredHost(t *testing.T) {
	orig := config.AppConfig
	config.AppConfig.SMTPHost = ""
	defer func() { config.AppConfig = orig }()

	err := SendEmail(context.Background(), "someone@example.com", "subject", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestSendEmailHonorsContextDeadline(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	// A relay that greets and then never answers; the client has to give up
	// on its own.
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		fmt.Fprint(conn, "220 stall.test ESMTP\r\n")
		io.Copy(io.Discard, conn)
	}()

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	orig := config.AppConfig
	config.AppConfig.SMTPHost = host
	config.AppConfig.SMTPPort = port
	config.AppConfig.SMTPUser = ""
	config.AppConfig.SMTPFrom = "noreply@stall.test"
	defer func() { config.AppConfig = orig }()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = SendEmail(ctx, "someone@stall.test", "subject", "body")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second, "send must stop at the context deadline")
}
