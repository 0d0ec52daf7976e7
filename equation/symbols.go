package equation

// bigOperators maps LaTeX large operators to HWP keywords.
var bigOperators = map[string]string{
	"sum":       "sum",
	"prod":      "prod",
	"coprod":    "coprod",
	"int":       "int",
	"oint":      "oint",
	"iint":      "dint",
	"iiint":     "tint",
	"bigcup":    "union",
	"bigcap":    "inter",
	"bigoplus":  "bigoplus",
	"bigotimes": "bigotimes",
	"bigvee":    "bigvee",
	"bigwedge":  "bigwedge",
}

// functionNames are upright function names; HWP uses the same spelling.
var functionNames = map[string]bool{
	"sin": true, "cos": true, "tan": true, "cot": true, "sec": true, "csc": true,
	"arcsin": true, "arccos": true, "arctan": true,
	"sinh": true, "cosh": true, "tanh": true, "coth": true,
	"log": true, "ln": true, "lg": true, "exp": true,
	"det": true, "gcd": true, "max": true, "min": true, "sup": true, "inf": true,
	"lim": true, "limsup": true, "liminf": true,
	"arg": true, "deg": true, "dim": true, "hom": true, "ker": true, "Pr": true, "mod": true,
}

// accents maps accent commands to HWP decorations.
var accents = map[string]string{
	"hat":            "HAT",
	"widehat":        "HAT",
	"check":          "CHECK",
	"tilde":          "TILDE",
	"widetilde":      "TILDE",
	"acute":          "ACUTE",
	"grave":          "GRAVE",
	"dot":            "DOT",
	"ddot":           "DDOT",
	"bar":            "BAR",
	"vec":            "VEC",
	"overline":       "OVERLINE",
	"underline":      "UNDERLINE",
	"overbrace":      "OVERBRACE",
	"underbrace":     "UNDERBRACE",
	"overrightarrow": "OVERARROW",
}

// greek maps Greek letter commands. HWP spells capitals in upper case.
var greek = map[string]string{
	"alpha": "alpha", "beta": "beta", "gamma": "gamma", "delta": "delta",
	"epsilon": "epsilon", "varepsilon": "varepsilon", "zeta": "zeta", "eta": "eta",
	"theta": "theta", "vartheta": "vartheta", "iota": "iota", "kappa": "kappa",
	"lambda": "lambda", "mu": "mu", "nu": "nu", "xi": "xi", "pi": "pi",
	"varpi": "varpi", "rho": "rho", "varrho": "varrho", "sigma": "sigma",
	"varsigma": "varsigma", "tau": "tau", "upsilon": "upsilon", "phi": "phi",
	"varphi": "varphi", "chi": "chi", "psi": "psi", "omega": "omega",

	"Gamma": "GAMMA", "Delta": "DELTA", "Theta": "THETA", "Lambda": "LAMBDA",
	"Xi": "XI", "Pi": "PI", "Sigma": "SIGMA", "Upsilon": "UPSILON",
	"Phi": "PHI", "Psi": "PSI", "Omega": "OMEGA",
}

// symbols maps named symbols, relations and arrows.
var symbols = map[string]string{
	// operators
	"times": "times", "cdot": "cdot", "div": "div", "pm": "+-", "mp": "-+",
	"circ": "circ", "bullet": "bullet", "ast": "ast", "star": "star",

	// relations
	"leq": "leq", "le": "leq", "geq": "geq", "ge": "geq", "neq": "neq", "ne": "neq",
	"approx": "approx", "equiv": "equiv", "sim": "sim", "simeq": "simeq",
	"cong": "cong", "propto": "propto", "ll": "<<", "gg": ">>",
	"prec": "prec", "succ": "succ", "doteq": "doteq", "asymp": "asymp",

	// sets
	"in": "in", "ni": "owns", "notin": "notin", "subset": "subset", "supset": "supset",
	"subseteq": "subseteq", "supseteq": "supseteq", "cap": "cap", "cup": "cup",
	"emptyset": "emptyset", "varnothing": "emptyset",

	// logic
	"forall": "forall", "exists": "exist", "neg": "lnot", "lnot": "lnot",
	"vee": "vee", "wedge": "wedge", "therefore": "therefore", "because": "because",
	"vdash": "vdash", "models": "models", "bot": "bot", "top": "top", "perp": "bot",

	// calculus and misc
	"partial": "partial", "nabla": "LAPLACE", "infty": "inf", "prime": "prime",
	"angle": "angle", "triangle": "triangle", "diamond": "diamond",
	"dagger": "dagger", "ddagger": "ddagger", "aleph": "aleph", "hbar": "hbar",
	"imath": "imath", "jmath": "jmath", "ell": "ell", "wp": "wp",
	"Re": "imag", "Im": "image",

	// arrows
	"rightarrow": "->", "to": "->", "leftarrow": "<-", "gets": "<-",
	"leftrightarrow": "<->", "Rightarrow": "=>", "Leftarrow": "<=",
	"Leftrightarrow": "<=>", "uparrow": "uparrow", "downarrow": "downarrow",
	"Uparrow": "UPARROW", "Downarrow": "DOWNARROW", "nearrow": "nearrow",
	"searrow": "searrow", "nwarrow": "nwarrow", "swarrow": "swarrow",
	"mapsto": "mapsto", "hookleftarrow": "hookleft", "hookrightarrow": "hookright",

	// dots
	"ldots": "ldots", "cdots": "cdots", "vdots": "vdots", "ddots": "ddots", "dots": "cdots",

	// circled
	"oplus": "oplus", "ominus": "ominus", "otimes": "otimes", "odot": "odot", "oslash": "oslash",

	// spacing
	",": "`", ";": "~", "!": "", " ": "~",
}
