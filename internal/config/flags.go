// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a bind address in format [host]:[port]
//	-d database URL (sqlalchemy.url equivalent)
//	-c/-config INI document path
//	-session-secret session cookie signing secret
//	-authtkt-secret auth ticket signing secret
//	-registry container destination registry host:port
//	-broker notifications broker URL
func ParseFlags() *StructuredConfig {
	var bindAddress NetAddress
	var databaseURL string
	var iniConfigPath string
	var sessionSecret string
	var authTktSecret string
	var destinationRegistry string
	var brokerURL string

	flag.Var(&bindAddress, "a", "Net address host:port")
	flag.StringVar(&databaseURL, "d", "", "Database URL")
	flag.StringVar(&iniConfigPath, "c", "", "INI config file path")
	flag.StringVar(&iniConfigPath, "config", "", "INI config file path (alias)")
	flag.StringVar(&sessionSecret, "session-secret", "", "Session signing secret")
	flag.StringVar(&authTktSecret, "authtkt-secret", "", "Auth ticket signing secret")
	flag.StringVar(&destinationRegistry, "registry", "", "Container destination registry host:port")
	flag.StringVar(&brokerURL, "broker", "", "Notifications broker URL")

	flag.Parse()

	return &StructuredConfig{
		Storage: Storage{
			DatabaseURL: databaseURL,
		},
		Server: Server{
			Host: bindAddress.Host,
			Port: bindAddress.Port,
		},
		Session: Session{
			Secret: sessionSecret,
		},
		AuthTkt: AuthTkt{
			Secret: authTktSecret,
		},
		Container: Container{
			DestinationRegistry: destinationRegistry,
		},
		Notify: Notify{
			BrokerURL: brokerURL,
		},
		INIFilePath: iniConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses a [host]:[port] string into the receiver.
// Implements the flag.Value interface.
func (a *NetAddress) Set(value string) error {
	host, portString, found := strings.Cut(value, ":")
	if !found {
		return errors.New("need address in a form host:port")
	}

	port, err := strconv.Atoi(portString)
	if err != nil {
		return err
	}
	if port < 0 || port > 65535 {
		return errors.New("port out of range")
	}

	a.Host = host
	a.Port = port

	return nil
}
