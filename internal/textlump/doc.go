// Package textlump parses the text metadata lumps that carry map titles.
//
// Three grammars are supported, each as a Source: DEHACKED string
// replacements (HUSTR_n), the ZDoom subset of MAPINFO, and UMAPINFO blocks.
// Every source is lenient. Lines or statements it cannot interpret are
// skipped, and a source only ever reports titles for slots the caller
// already knows about.
package textlump
