// Package paths provides centralized path handling for dotman.
//
// It resolves user-supplied paths (home-directory shorthand), computes the
// default repository location and the fixed locations dotman keeps outside
// the repository, following the XDG Base Directory specification:
//
//   - Config: $XDG_CONFIG_HOME/dotman (config.toml, repository.toml pointer)
//
// # Environment Variables
//
//   - HOME: home directory, used for "~" expansion and the default repository
//   - DOTMAN_CONFIG_DIR: override for the config directory
//
// # Usage
//
//	abs, err := paths.Resolve("~/.bashrc")   // /home/user/.bashrc
//	root, err := paths.DefaultRepository("") // /home/user/dotfiles
//	manifest := paths.ManifestPath(root)     // /home/user/dotfiles/dotfiles.toml
package paths
