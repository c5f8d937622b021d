package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// Registry reads database connection profiles from an INI file, one section
// per profile:
//
//	[reporting]
//	host = db.internal
//	port = 5432
//	user = app
//	password = secret
//	database = library
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetConfig(ctx context.Context, profile string) (*DatabaseSettings, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

// GetConfig returns the profile's keys. Unset keys stay zero so they do not
// override other configuration when applied.
func (cr *cfgRegistry) GetConfig(_ context.Context, profile string) (*DatabaseSettings, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	port := 0
	if section.HasKey("port") {
		port, err = section.Key("port").Int()
		if err != nil {
			return nil, fmt.Errorf("profile %s: invalid port: %w", profile, err)
		}
	}

	return &DatabaseSettings{
		Host:     section.Key("host").String(),
		Port:     port,
		User:     section.Key("user").String(),
		Password: section.Key("password").String(),
		Name:     section.Key("database").String(),
		SSLMode:  section.Key("sslmode").String(),
	}, nil
}

// Apply overrides the connection fields of d that the profile sets.
func (d *DatabaseSettings) Apply(profile *DatabaseSettings) {
	if profile == nil {
		return
	}
	if profile.Host != "" {
		d.Host = profile.Host
	}
	if profile.Port != 0 {
		d.Port = profile.Port
	}
	if profile.User != "" {
		d.User = profile.User
	}
	if profile.Password != "" {
		d.Password = profile.Password
	}
	if profile.Name != "" {
		d.Name = profile.Name
	}
	if profile.SSLMode != "" {
		d.SSLMode = profile.SSLMode
	}
}

// LoadWithProfile loads settings and, when profile is set, applies the named
// connection profile from profilesPath on top of them.
func LoadWithProfile(ctx context.Context, path, profilesPath, profile string) (*Settings, error) {
	settings, err := Load(path)
	if err != nil {
		return nil, err
	}
	if profile == "" {
		return settings, nil
	}

	registry, err := NewRegistry(profilesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles file %s: %w", profilesPath, err)
	}
	db, err := registry.GetConfig(ctx, profile)
	if err != nil {
		return nil, err
	}
	settings.Database.Apply(db)
	return settings, nil
}
