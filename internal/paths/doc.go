// Package paths resolves the filesystem locations ntc itself depends on:
// the XDG configuration directory (via github.com/adrg/xdg), home-relative
// override paths, and the default working directory probed for conventional
// toolchain installs.
//
//	paths.ConfigDir()         // ~/.config/ntc
//	paths.ExpandHome("~/ndk") // /home/me/ndk
//	paths.DefaultWorkingDir() // parent of the current directory
package paths
