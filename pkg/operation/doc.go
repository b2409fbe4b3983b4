/*
Package operation implements the copy-and-transform pipeline for a template tree.

	+-------------+
	|  Copier     |  enumerate (pre-order, junk/ignore filtered)
	+------+------+
	       |  errgroup, bounded
	+------+------+
	|  per entry  |  ExpandSegment -> Policy.Check -> create / Transform
	+------+------+
	       |
	+------+------+
	|  Emitter    |  xxxStart, then xxxError or xxxComplete
	+-------------+

🎯 Purpose:
- Copy every directory, file and symlink of a template to a destination
- Expand placeholders in path segments and in text file content
- Leave binary files byte-for-byte identical
- Refuse to clobber existing files unless overwriting is on

🔄 Flow:
1. The source tree is listed up front, so results keep pre-order no matter
   which copy finishes first
2. Each entry waits for its parent directory, then expands its own name
3. The policy is checked, then the entry is created
4. The first failure cancels the rest and is returned as is

⚡ Streaming:
Files are read in chunks. The first chunk decides text or binary for the
whole file. Text chunks that contain the delimiter are rendered on their
own, so a tag split across two chunks is copied literally.

🔍 Example:

	c, err := operation.NewCopier(operation.Options{Symlinks: operation.SymlinkPreserve})
	result, err := c.Copy(ctx, "templates/app", "out/app", values)
*/
package operation
