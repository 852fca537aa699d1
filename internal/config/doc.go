// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation,
// which keeps the ARI password out of the file:
//
//	api:
//	  base_url: http://asterisk:8088
//	  username: ariwatch
//	  password: ${ARI_PASSWORD}
//	events:
//	  application: demo
package config
