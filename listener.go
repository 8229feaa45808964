package brokerlog

import (
	"crypto/tls"
	"net"
	"sync"

	"github.com/rs/zerolog"
)

// Protocol is the transport a listener is believed to serve. It is a
// best-effort label for diagnostics, not a guarantee.
type Protocol string

const (
	ProtocolTCP   Protocol = "tcp"
	ProtocolTLS   Protocol = "tls"
	ProtocolHTTP  Protocol = "http"
	ProtocolHTTPS Protocol = "https"
)

// Capabilities are the listener properties protocol inference looks at.
type Capabilities struct {
	TLSKeyAndCert bool
	HTTPUpgrade   bool
}

// capabilitiesOf probes the optional capability interfaces. A listener that
// does not implement one reports false for it.
func capabilitiesOf(l Listener) Capabilities {
	var caps Capabilities
	if t, ok := l.(TLSCapable); ok {
		caps.TLSKeyAndCert = t.HasTLSKeyAndCert()
	}
	if h, ok := l.(HTTPCapable); ok {
		caps.HTTPUpgrade = h.HasHTTPUpgrade()
	}
	return caps
}

// InferProtocol classifies a listener: TLS and HTTP together is https, then
// tls, then http, and tcp otherwise.
func InferProtocol(caps Capabilities) Protocol {
	switch {
	case caps.TLSKeyAndCert && caps.HTTPUpgrade:
		return ProtocolHTTPS
	case caps.TLSKeyAndCert:
		return ProtocolTLS
	case caps.HTTPUpgrade:
		return ProtocolHTTP
	default:
		return ProtocolTCP
	}
}

// Address is the bound address of a listener.
type Address struct {
	Host     string
	Port     int
	Family   string
	Protocol Protocol
}

// MarshalZerologObject writes the address the way it appears at the top level
// of a "listening" record.
func (a Address) MarshalZerologObject(e *zerolog.Event) {
	e.Str("address", a.Host).Str("family", a.Family).Int("port", a.Port)
	if a.Protocol != emptyString {
		e.Str("protocol", string(a.Protocol))
	}
}

// AddressOf converts a net.Addr. TCP and UDP addresses are split into host,
// port and IP family; a nil IP leaves the host empty. Anything else keeps its
// string form and network name.
func AddressOf(addr net.Addr) Address {
	switch a := addr.(type) {
	case nil:
		return Address{}
	case *net.TCPAddr:
		if a == nil {
			return Address{}
		}
		return Address{Host: ipHost(a.IP), Port: a.Port, Family: ipFamily(a.IP)}
	case *net.UDPAddr:
		if a == nil {
			return Address{}
		}
		return Address{Host: ipHost(a.IP), Port: a.Port, Family: ipFamily(a.IP)}
	default:
		return Address{Host: a.String(), Family: a.Network()}
	}
}

func ipHost(ip net.IP) string {
	if ip == nil {
		return emptyString
	}
	return ip.String()
}

func ipFamily(ip net.IP) string {
	if ip == nil || ip.To4() != nil {
		return "IPv4"
	}
	return "IPv6"
}

// bindListener resolves the listener's protocol once and logs every
// "listening" signal it emits.
func (b *Binder) bindListener(l Listener) {
	if l == nil {
		return
	}
	protocol := InferProtocol(capabilitiesOf(l))
	l.OnListening(func() {
		addr := l.Address()
		addr.Protocol = protocol
		b.root.InfoWith().EmbedObject(addr).Msg(msgListening)
	})
}

// Endpoint is a Listener for brokers that manage their own net.Listener. The
// broker calls MarkListening once the socket is bound.
type Endpoint struct {
	// TLSConfig is the server TLS configuration, nil for plain sockets.
	TLSConfig *tls.Config
	// HTTP marks endpoints that accept HTTP upgrades (MQTT over WebSocket).
	HTTP bool

	mu        sync.Mutex
	addr      net.Addr
	callbacks []func()
}

func NewEndpoint(tlsConfig *tls.Config, http bool) *Endpoint {
	return &Endpoint{TLSConfig: tlsConfig, HTTP: http}
}

func (e *Endpoint) Address() Address {
	e.mu.Lock()
	defer e.mu.Unlock()
	return AddressOf(e.addr)
}

func (e *Endpoint) OnListening(fn func()) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.callbacks = append(e.callbacks, fn)
	e.mu.Unlock()
}

func (e *Endpoint) HasTLSKeyAndCert() bool {
	return e.TLSConfig != nil && (len(e.TLSConfig.Certificates) > 0 || e.TLSConfig.GetCertificate != nil)
}

func (e *Endpoint) HasHTTPUpgrade() bool {
	return e.HTTP
}

// MarkListening records the bound address and runs the OnListening callbacks
// on the calling goroutine.
func (e *Endpoint) MarkListening(addr net.Addr) {
	e.mu.Lock()
	e.addr = addr
	callbacks := make([]func(), len(e.callbacks))
	copy(callbacks, e.callbacks)
	e.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}
