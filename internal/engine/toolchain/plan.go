package toolchain

import (
	"go.trai.ch/freshen/internal/core/domain"
)

// Plan expands m into build requests ordered so that every step's generated
// inputs are produced by an earlier step.
//
// Source lists in m are expected to be expanded already. Every request runs
// in m.Root with m.Env applied.
func Plan(m *domain.Manifest) []domain.BuildRequest {
	tools := m.Tools.WithDefaults()

	var reqs []domain.BuildRequest
	for _, c := range m.Copy {
		reqs = append(reqs, Copy(tools, c.From, c.To))
	}
	for _, meta := range m.ClassGen {
		reqs = append(reqs, ClassGen(tools, meta, m.OutDir))
	}

	// Generated C sources are compiled after the hand-written ones.
	var generated []string
	for _, src := range m.Lex {
		req := Lex(tools, src, m.OutDir)
		generated = append(generated, req.Outputs[0])
		reqs = append(reqs, req)
	}
	for _, src := range m.Yacc {
		req := Yacc(tools, src, m.OutDir)
		generated = append(generated, req.Outputs[0])
		reqs = append(reqs, req)
	}

	sources := make([]string, 0, len(m.Sources)+len(generated))
	sources = append(sources, m.Sources...)
	sources = append(sources, generated...)

	objects := make([]string, 0, len(sources))
	for _, src := range sources {
		req := Cc(tools, src, m.OutDir, m.CFlags, m.Includes, m.Headers)
		objects = append(objects, req.Outputs[0])
		reqs = append(reqs, req)
	}

	if m.Link.Output != "" {
		reqs = append(reqs, Link(tools, objects, m.Link.Output, m.LDFlags, m.Link.Libs))
	}

	for i := range reqs {
		reqs[i].Dir = m.Root
		if len(m.Env) > 0 {
			reqs[i].Env = m.Env
		}
	}
	return reqs
}

// Outputs returns every output declared by reqs, in plan order.
func Outputs(reqs []domain.BuildRequest) []string {
	var out []string
	for i := range reqs {
		for _, o := range reqs[i].Outputs {
			out = append(out, reqs[i].Resolve(o))
		}
	}
	return out
}
