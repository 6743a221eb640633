package transport

import (
	"bytes"
	"errors"
	"testing"

	"go-jukebox/config"

	gomidi "gitlab.com/gomidi/midi/v2"
)

type bufferTransport struct{ bytes.Buffer }

func (b *bufferTransport) Close() error { return nil }
func (b *bufferTransport) Name() string { return "buffer" }

func TestOpenNone(t *testing.T) {
	tr, err := Open(config.OutputConfig{Kind: config.OutputNone})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if tr.Name() != "none" {
		t.Errorf("Name = %q, expected none", tr.Name())
	}
	n, err := tr.Write([]byte{0x90, 60, 100})
	if n != 3 || err != nil {
		t.Errorf("Write = %d,%v expected 3,nil", n, err)
	}
}

func TestOpenUnknown(t *testing.T) {
	if _, err := Open(config.OutputConfig{Kind: "carrier-pigeon"}); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestCounter(t *testing.T) {
	buf := &bufferTransport{}
	c := &Counter{Transport: buf}
	c.Write([]byte{0xB0, 120, 0})
	c.Write([]byte{0xC1, 5})
	if c.Bytes != 5 || c.Messages != 2 {
		t.Errorf("Counter = %d bytes %d messages, expected 5 and 2", c.Bytes, c.Messages)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0xB0, 120, 0, 0xC1, 5}) {
		t.Errorf("forwarded % X", buf.Bytes())
	}
}

func TestPortWriteSendsOneMessage(t *testing.T) {
	var sent []gomidi.Message
	p := &Port{name: "test", send: func(m gomidi.Message) error {
		sent = append(sent, m)
		return nil
	}}

	raw := []byte{0x93, 64, 90}
	n, err := p.Write(raw)
	if n != 3 || err != nil {
		t.Fatalf("Write = %d,%v", n, err)
	}
	raw[0] = 0 // the port keeps its own copy
	if len(sent) != 1 || !bytes.Equal(sent[0], []byte{0x93, 64, 90}) {
		t.Errorf("sent %v", sent)
	}

	p.send = func(gomidi.Message) error { return errors.New("port gone") }
	if n, err := p.Write(raw); n != 0 || err == nil {
		t.Errorf("Write on failing port = %d,%v", n, err)
	}
}
