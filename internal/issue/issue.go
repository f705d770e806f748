// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	CatalogNotFoundId Id = iota + 1
	CatalogParseErrorId
	ConfigLoadFailedId
	CollisionsDetectedId
	PieceNotFoundId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as styled terminal Markdown. stylePath is a
// glamour style name ("dark", "light", "notty") or a JSON style file.
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	catalogNotFoundIssue = &Issue{
		id: CatalogNotFoundId,
		mdMsg: `
# No piece catalog found!

planbuild needs at least one catalog file listing piece tables and pieces.

## Where catalogs are looked up (in order of precedence):
1. Files or directories passed on the command line
2. ` + "`catalog.paths`" + ` in your config file
3. ` + "`PLANBUILD_CATALOG_PATHS`" + ` in the environment

## Things you can try:
- Point planbuild at a catalog file:
~~~
$ planbuild scan ./pieces.cue
~~~

- Or at a directory of ` + "`.cue`, `.toml` and `.yaml`" + ` files:
~~~
$ planbuild scan ./catalog
~~~

## Example catalog:
~~~cue
tables: [{
	name: "Hammer"
	pieces: [{
		name:         "wood_wall"
		display_name: "Wood Wall"
		requirements: {Wood: 2}
	}]
}]
~~~`,
	}

	catalogParseErrorIssue = &Issue{
		id: CatalogParseErrorId,
		mdMsg: `
# Failed to parse a catalog file!

One of the catalog files could not be read or does not match the catalog schema.

## Things you can try:
- Check the file for syntax errors (CUE, TOML or YAML depending on the extension)
- Every table and piece needs a non-blank ` + "`name`" + `
- Requirement amounts must be whole numbers, zero or greater
- Unknown fields are rejected; check for typos such as ` + "`displayname`" + `
- Re-run with ` + "`--verbose`" + ` to see the full error chain`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The planbuild configuration file could not be loaded.

## Things you can try:
- Check the file for CUE syntax errors
- Print the effective configuration:
~~~
$ planbuild config show
~~~
- Print the path planbuild loads the configuration from:
~~~
$ planbuild config path
~~~
- Write a fresh default configuration:
~~~
$ planbuild config init
~~~`,
	}

	collisionsDetectedIssue = &Issue{
		id: CollisionsDetectedId,
		mdMsg: `
# Display name collisions detected

Some pieces share a display name but need different resources. Anything that
looks up recipes by display name alone cannot tell them apart, so the plan
for one of them may show the wrong cost.

## Things you can try:
- Give the modded piece a distinct display name
- Align the requirements of pieces that really are the same thing
- Inspect one group:
~~~
$ planbuild lookup name "Wood Wall"
~~~`,
	}

	pieceNotFoundIssue = &Issue{
		id: PieceNotFoundId,
		mdMsg: `
# Piece not found

No piece or plan with that name exists in the scanned catalog.

## Things you can try:
- Names are case sensitive; plan names end with the plan suffix (default ` + "`_planned`" + `)
- Prefab names of spawned objects may carry ` + "`(Clone)`" + `; pass ` + "`--ignore-clone`" + `
- List every plan:
~~~
$ planbuild scan
~~~`,
	}

	issues = map[Id]*Issue{
		catalogNotFoundIssue.Id():    catalogNotFoundIssue,
		catalogParseErrorIssue.Id():  catalogParseErrorIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		collisionsDetectedIssue.Id(): collisionsDetectedIssue,
		pieceNotFoundIssue.Id():      pieceNotFoundIssue,
	}
)

// Values returns every issue ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
