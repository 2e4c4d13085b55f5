package http

import (
	"printpredict/form"
	"printpredict/i18n"
	"printpredict/inference"
)

type pageView struct {
	Lang    string
	Title   string
	Intro   string
	Submit  string
	Choices []choiceView
	Numbers []numberView
	Support supportView
	Errors  []string
	Result  *resultView
}

type choiceView struct {
	Name     string
	Label    string
	Options  []string
	Selected string
}

type numberView struct {
	Name  string
	Label string
	Value string
	Min   string
	Max   string
	Step  string
}

type supportView struct {
	Name     string
	Label    string
	YesLabel string
	NoLabel  string
	Yes      bool
}

type resultView struct {
	Class   string `json:"class"`
	Message string `json:"message"`
}

func buildPage(p *i18n.Printer, s *form.Session, errs []string, out inference.Outcome) pageView {
	view := pageView{
		Lang:   p.Tag().String(),
		Title:  p.Sprintf(i18n.PageTitle),
		Intro:  p.Sprintf(i18n.PageIntro),
		Submit: p.Sprintf(i18n.SubmitLabel),
		Errors: errs,
		Support: supportView{
			Name:     string(form.SupportUsed),
			Label:    p.FieldLabel(string(form.SupportUsed)),
			YesLabel: p.Sprintf(i18n.SupportYesLabel),
			NoLabel:  p.Sprintf(i18n.SupportNoLabel),
			Yes:      s.Support().Yes(),
		},
	}
	for _, c := range form.Choices() {
		view.Choices = append(view.Choices, choiceView{
			Name:     string(c.Field),
			Label:    p.FieldLabel(string(c.Field)),
			Options:  s.Options(c.Field),
			Selected: s.Choice(c.Field),
		})
	}
	for _, n := range form.Numbers() {
		view.Numbers = append(view.Numbers, numberView{
			Name:  string(n.Field),
			Label: p.FieldLabel(string(n.Field)),
			Value: s.Display(n.Field),
			Min:   n.Format(n.Min),
			Max:   n.Format(n.Max),
			Step:  n.Format(n.Step),
		})
	}
	if out != nil {
		r := renderOutcome(p, out)
		view.Result = &r
	}
	return view
}

// renderOutcome picks the message and styling for an outcome. A failed
// verdict and an error share the warning style.
func renderOutcome(p *i18n.Printer, out inference.Outcome) resultView {
	switch o := out.(type) {
	case inference.Verdict:
		if o.Success {
			return resultView{Class: "success", Message: p.Sprintf(i18n.VerdictSuccess, o.Percent())}
		}
		return resultView{Class: "error", Message: p.Sprintf(i18n.VerdictFailure, o.Percent())}
	case inference.Failure:
		return resultView{Class: "error", Message: p.Sprintf(i18n.InferenceError, o.Message)}
	}
	panic("http: unhandled outcome type")
}
