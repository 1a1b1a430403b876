// Package config provides configuration management for the ntc CLI.
//
// # Configuration File
//
// ntc reads ntc.yaml from the current directory, then from
// $XDG_CONFIG_HOME/ntc. Every key can also be set through an NTC_ prefixed
// environment variable with dots replaced by underscores
// (NTC_ANDROID_API_LEVEL=24).
//
//	version: 1
//	working_dir: ..            # probed for android-ndk* and osxcross*
//	host: linux                # defaults to the running OS
//	properties:
//	  androidNdk: ~/Android/Sdk/ndk/25.2.9519653
//	  osxcrossBin: /opt/osxcross/target/bin
//	android:
//	  api_level: 21
//	  compiler: clang-14
//	osxcross:
//	  darwin: darwin19
//	mingw:
//	  wrapper_suffix: -faker   # route mingw g++ through gxx-faker
//
// Properties given on the command line with -D take precedence over the
// properties map; see [Config.MergeProperties].
//
// # Validation
//
// [Validate] returns every problem at once as [*FieldError] values that
// unwrap to the sentinel errors in this package.
package config
