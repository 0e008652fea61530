/*
 * Copyright 2026 Presence Radar Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"os"
	"reflect"
	"strconv"
	"strings"
)

// EnvPrefix is prepended to the uppercased json tag of each config field
// when looking for an override, e.g. server_url -> PRESENCERADAR_SERVER_URL.
const EnvPrefix = "PRESENCERADAR_"

// applyEnvOverrides walks cfg's exported fields and overwrites string, bool
// and integer fields from matching environment variables. Nested struct
// pointers are followed when non-nil. Unset variables leave the field alone.
func applyEnvOverrides(cfg interface{}, prefix string) {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return
	}

	applyEnvToStruct(v.Elem(), prefix)
}

func applyEnvToStruct(v reflect.Value, prefix string) {
	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}

		tag := strings.Split(t.Field(i).Tag.Get("json"), ",")[0]
		if tag == "" || tag == "-" {
			continue
		}

		envName := prefix + strings.ToUpper(strings.ReplaceAll(tag, ".", "_"))

		if field.Kind() == reflect.Ptr && !field.IsNil() && field.Elem().Kind() == reflect.Struct {
			applyEnvToStruct(field.Elem(), envName+"_")
			continue
		}

		if field.Kind() == reflect.Struct {
			applyEnvToStruct(field, envName+"_")
			continue
		}

		value, ok := os.LookupEnv(envName)
		if !ok {
			continue
		}

		setEnvField(field, value)
	}
}

func setEnvField(field reflect.Value, value string) {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		if b, err := strconv.ParseBool(value); err == nil {
			field.SetBool(b)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			field.SetInt(n)
		}
	default:
	}
}
