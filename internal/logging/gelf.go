package logging

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/bytedance/sonic"
)

// GelfWriter forwards slog JSON lines to a GELF 1.1 endpoint over UDP. It is
// meant to sit behind io.MultiWriter next to stdout.
type GelfWriter struct {
	conn     net.Conn
	hostname string
	service  string
}

// NewGelfWriter dials addr (e.g. "graylog:12201") over UDP.
func NewGelfWriter(addr, service string) (*GelfWriter, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("gelf dial %s: %w", addr, err)
	}

	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = service
	}

	return &GelfWriter{conn: conn, hostname: hostname, service: service}, nil
}

// syslog severities
var gelfLevels = map[string]int{
	"DEBUG": 7,
	"INFO":  6,
	"WARN":  4,
	"ERROR": 3,
}

// Write sends every line of p as one GELF message. Send errors are dropped so
// logging never fails the caller.
func (w *GelfWriter) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(p, []byte{'\n'}) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if payload, err := w.encode(line); err == nil {
			_, _ = w.conn.Write(payload)
		}
	}
	return len(p), nil
}

func (w *GelfWriter) encode(line []byte) ([]byte, error) {
	msg := map[string]any{
		"version":  "1.1",
		"host":     w.hostname,
		"level":    6,
		"_service": w.service,
	}

	var rec map[string]any
	if err := sonic.Unmarshal(line, &rec); err != nil {
		msg["short_message"] = string(line)
		msg["timestamp"] = float64(time.Now().UnixNano()) / 1e9
		return sonic.Marshal(msg)
	}

	ts := time.Now()
	for k, v := range rec {
		switch k {
		case "msg":
			msg["short_message"] = fmt.Sprint(v)
		case "level":
			if lvl, ok := gelfLevels[fmt.Sprint(v)]; ok {
				msg["level"] = lvl
			}
		case "time":
			if s, ok := v.(string); ok {
				if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
					ts = parsed
				}
			}
		case "id":
			// reserved by GELF
			msg["_record_id"] = v
		default:
			msg["_"+k] = v
		}
	}
	msg["timestamp"] = float64(ts.UnixNano()) / 1e9
	if _, ok := msg["short_message"]; !ok {
		msg["short_message"] = string(line)
	}

	return sonic.Marshal(msg)
}

// Close releases the UDP socket.
func (w *GelfWriter) Close() error {
	return w.conn.Close()
}
