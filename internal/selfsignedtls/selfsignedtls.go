// Package selfsignedtls issues an on-demand self-signed certificate for the
// HTTP decompression service's optional HTTPS listener, adapted from
// coreos/pkg's k8s-tlsutil trimmed to a single host: no CA/leaf split, no
// SubjectAltName list beyond the one host the listener binds to.
package selfsignedtls

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"fmt"
	"math/big"
	"net"
	"time"
)

const (
	rsaKeySize = 2048
	duration1y = 365 * 24 * time.Hour
	commonName = "inflated"
	orgName    = "inflate self-signed"
)

// Issue generates a fresh RSA key pair and a self-signed certificate valid
// for one year, covering host as either a DNS name or an IP SAN depending
// on how it parses, and returns a tls.Certificate ready for
// tls.Config.Certificates.
func Issue(host string) (tls.Certificate, error) {
	key, err := rsa.GenerateKey(rand.Reader, rsaKeySize)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("selfsignedtls: generate key: %w", err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("selfsignedtls: generate serial: %w", err)
	}

	tmpl := x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			CommonName:   commonName,
			Organization: []string{orgName},
		},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(duration1y),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}
	if ip := net.ParseIP(host); ip != nil {
		tmpl.IPAddresses = []net.IP{ip}
	} else if host != "" {
		tmpl.DNSNames = []string{host}
	}

	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, key.Public(), key)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("selfsignedtls: create certificate: %w", err)
	}

	return tls.Certificate{
		Certificate: [][]byte{der},
		PrivateKey:  key,
	}, nil
}
