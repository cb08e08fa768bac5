package toxbind

import (
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/toxbind/engine"
)

// ProxyType specifies the type of proxy to use.
type ProxyType uint8

const (
	ProxyTypeNone ProxyType = iota
	ProxyTypeHTTP
	ProxyTypeSOCKS5
)

// SaveDataType specifies the type of saved data.
type SaveDataType uint8

const (
	SaveDataTypeNone SaveDataType = iota
	SaveDataTypeToxSave
	SaveDataTypeSecretKey
)

// ProxyOptions contains proxy configuration. Host and Port are required
// whenever Type is not ProxyTypeNone.
type ProxyOptions struct {
	Type ProxyType
	Host string
	Port uint16
}

// Options contains configuration options for creating a Tox instance.
// It is consumed once by New and never mutated afterward.
type Options struct {
	IPv6Enabled      bool
	UDPEnabled       bool
	LocalDiscovery   bool
	DHTAnnouncements bool
	HolePunching     bool

	Proxy *ProxyOptions

	// StartPort and EndPort bound the UDP port search range. Both zero
	// means the engine's default range.
	StartPort uint16
	EndPort   uint16

	// TCPPort enables the built-in TCP relay server when nonzero.
	TCPPort uint16

	SavedataType SaveDataType
	SavedataData []byte

	// ThreadsEnabled turns on the engine's experimental thread safety,
	// allowing the instance to be driven from more than one goroutine.
	ThreadsEnabled bool

	// LogEnabled wires the engine's log output into Logger.
	LogEnabled bool

	// Logger receives forwarded engine log messages and the session
	// layer's own logging. Defaults to the standard logrus logger.
	Logger logrus.FieldLogger
}

// NewOptions creates a new default Options.
func NewOptions() *Options {
	return &Options{
		IPv6Enabled:      true,
		UDPEnabled:       true,
		LocalDiscovery:   true,
		DHTAnnouncements: true,
		HolePunching:     true,
		StartPort:        33445,
		EndPort:          33545,
		TCPPort:          0, // Relay server disabled by default
		SavedataType:     SaveDataTypeNone,
		LogEnabled:       true,
	}
}

// validate checks the cross-field invariants that the engine cannot
// report precisely. Runs before any native resource is acquired.
func (o *Options) validate() error {
	if o.Proxy != nil && o.Proxy.Type != ProxyTypeNone {
		if o.Proxy.Host == "" {
			return ErrProxyHostMissing
		}
		if len(o.Proxy.Host) > engine.MaxHostnameLength {
			return ErrProxyHostTooLong
		}
		if o.Proxy.Port == 0 {
			return ErrProxyPortMissing
		}
	}

	if o.SavedataType != SaveDataTypeNone && len(o.SavedataData) == 0 {
		return ErrSavedataDataMissing
	}

	return nil
}

// lower validates o and translates it into the engine's flat option
// structure. On success the returned native options are owned by the
// caller until handed to Backend.New; on any error nothing is retained.
func lower(eng engine.Backend, o *Options) (*engine.Options, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}

	native, code := eng.OptionsNew()
	if code != engine.OptionsNewOK {
		return nil, mapOptionsNewError(code)
	}

	native.IPv6Enabled = o.IPv6Enabled
	native.UDPEnabled = o.UDPEnabled
	native.LocalDiscoveryEnabled = o.LocalDiscovery
	native.DHTAnnouncementsEnabled = o.DHTAnnouncements
	native.HolePunchingEnabled = o.HolePunching
	native.StartPort = o.StartPort
	native.EndPort = o.EndPort
	native.TCPPort = o.TCPPort
	native.ExperimentalThreadSafety = o.ThreadsEnabled

	if o.Proxy != nil && o.Proxy.Type != ProxyTypeNone {
		native.ProxyType = engine.ProxyType(o.Proxy.Type)
		native.ProxyHost = o.Proxy.Host
		native.ProxyPort = o.Proxy.Port
	}

	if o.SavedataType != SaveDataTypeNone {
		native.SavedataType = engine.SavedataType(o.SavedataType)
		native.SavedataData = o.SavedataData
	}

	return native, nil
}
