// Package config loads template manifests and finds templates by name.
//
//	           +-------------+
//	           |  Manifest   |
//	           | (template)  |
//	           +------+------+
//	                  |
//	  +-------+-------+-------+--------+
//	  |       |       |       |        |
//	YAML     HCL    JSON    TOML   .scaffoldrc
//	               (jsonc)         (YAML, then HCL)
//
// 🎯 Purpose:
// - Reads the optional manifest at the top of a template directory
// - Resolves a template name through the XDG data directories
// - Turns a manifest into a scaffold.Config
//
// 🔄 Flow:
// 1. Locate turns a path or a name into a directory
// 2. Find picks the first manifest in ManifestNames
// 3. The parser registered for the file name decodes it
// 4. Validate checks placeholders, symlink mode and ignore globs
//
// 📄 Manifest (YAML):
//
//	template: template
//	symlinks: preserve
//	ignore: ["**/*.orig"]
//	placeholders:
//	  - name: name
//	    message: Project name
//	  - name: license
//	    type: select
//	    choices: [mit, apache]
//	    default: mit
//
// 📄 Manifest (HCL):
//
//	symlinks = "follow"
//
//	placeholder "author" {
//	  message = "Author"
//	  default = env.USER
//	}
//
// 🔍 Example:
//
//	t, err := config.LoadTemplate(ctx, "go-service")
//	cfg, err := t.Config()
//	s, err := scaffold.New(cfg, scaffold.WithPrompter(prompt.NewInteractive()))
package config
