// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and validates application configuration.
//
// Configuration is loaded via Koanf v2 with layered sources, highest
// priority last:
//
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, or CONFIG_PATH)
//  3. RECOMPRA_-prefixed environment variables
//     (RECOMPRA_JOB_KEY_INPUT -> job.key_input)
//
// The loaded Config is validated before use; entry points refuse to start on
// an invalid configuration.
package config
