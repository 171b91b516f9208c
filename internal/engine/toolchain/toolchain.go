// Package toolchain turns a manifest into an ordered list of build requests
// for the usual generator and compiler tools.
package toolchain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/freshen/internal/core/domain"
)

// DerivedPath names the file a tool produces from src: the base name of src
// with its extension replaced by ext, placed in outDir.
func DerivedPath(src, outDir, ext string) string {
	name := filepath.Base(src)
	name = strings.TrimSuffix(name, filepath.Ext(name)) + ext
	if outDir == "" {
		return name
	}
	if strings.HasSuffix(outDir, "/") || strings.HasSuffix(outDir, string(filepath.Separator)) {
		return outDir + name
	}
	return outDir + string(filepath.Separator) + name
}

// Lex generates a C scanner from a lex source.
func Lex(tools domain.Tools, src, outDir string) domain.BuildRequest {
	out := DerivedPath(src, outDir, ".c")
	return domain.BuildRequest{
		Name:    "lex " + src,
		Command: []string{tools.Lex, "-o", out, src},
		Inputs:  []string{src},
		Outputs: []string{out},
	}
}

// Yacc generates a C parser and its token header from a grammar.
func Yacc(tools domain.Tools, src, outDir string) domain.BuildRequest {
	out := DerivedPath(src, outDir, ".c")
	return domain.BuildRequest{
		Name:    "yacc " + src,
		Command: []string{tools.Yacc, "-d", "-o", out, src},
		Inputs:  []string{src},
		Outputs: []string{out, DerivedPath(src, outDir, ".h")},
	}
}

// Cc compiles one C source into an object file. Headers are inputs only.
func Cc(tools domain.Tools, src, outDir string, cflags, includes, headers []string) domain.BuildRequest {
	out := DerivedPath(src, outDir, ".o")

	argv := make([]string, 0, len(cflags)+len(includes)+5)
	argv = append(argv, tools.Cc)
	argv = append(argv, cflags...)
	for _, inc := range includes {
		argv = append(argv, "-I"+inc)
	}
	argv = append(argv, "-c", src, "-o", out)

	inputs := make([]string, 0, len(headers)+1)
	inputs = append(inputs, src)
	inputs = append(inputs, headers...)

	return domain.BuildRequest{
		Name:    "cc " + src,
		Command: argv,
		Inputs:  inputs,
		Outputs: []string{out},
	}
}

// Link combines objects and libraries into output.
func Link(tools domain.Tools, objects []string, output string, ldflags, libs []string) domain.BuildRequest {
	argv := make([]string, 0, len(ldflags)+len(objects)+len(libs)+3)
	argv = append(argv, tools.Link)
	argv = append(argv, ldflags...)
	argv = append(argv, "-o", output)
	argv = append(argv, objects...)
	argv = append(argv, libs...)

	return domain.BuildRequest{
		Name:    "link " + output,
		Command: argv,
		Inputs:  append([]string(nil), objects...),
		Outputs: []string{output},
	}
}

// ClassGen runs the class generator over a metadata file, producing a C++
// source and header pair.
func ClassGen(tools domain.Tools, meta, outDir string) domain.BuildRequest {
	cpp := DerivedPath(meta, outDir, ".cpp")
	hdr := DerivedPath(meta, outDir, ".h")
	return domain.BuildRequest{
		Name:    "classgen " + meta,
		Command: []string{tools.ClassGen, meta, cpp, hdr},
		Inputs:  []string{meta},
		Outputs: []string{cpp, hdr},
	}
}

// Copy copies a single file.
func Copy(tools domain.Tools, from, to string) domain.BuildRequest {
	return domain.BuildRequest{
		Name:    "copy " + to,
		Command: []string{tools.Copy, from, to},
		Inputs:  []string{from},
		Outputs: []string{to},
	}
}
