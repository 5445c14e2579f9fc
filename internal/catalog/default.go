package catalog

import "stepsurvey/internal/model"

// DefaultChoices is offered by questions that only ask for agreement
var DefaultChoices = []string{"Ja", "Nein", "Keine Angabe"}

// Default returns the built-in concept survey
func Default() *Catalog {
	return MustNew(defaultItems())
}

func defaultItems() []model.Item {
	return []model.Item{
		model.Section("1) Strategische Ausrichtung"),
		model.Ask(model.Question{
			ID:                 "tg_zielgruppen",
			Prompt:             "Primäre Zielgruppe ist der Vorstand. Sollen 1–2 Ebenen darunter (z. B. Bereichs-/Fachbereichsleitung) ebenfalls adressiert werden – und falls ja: mit welcher **Detailtiefe**?",
			Options:            DefaultChoices,
			CommentPlaceholder: "Bitte Zielgruppen & gewünschte Tiefe kurz skizzieren",
		}),
		model.Ask(model.Question{
			ID:      "freq_reporting",
			Prompt:  "Gibt es **Teile des Reports**, die **live/nahezu in Echtzeit** vorliegen sollen (z. B. Soll–Ist)? Wie ist die gewünschte **Aktualisierungsfrequenz** insgesamt?",
			Options: []string{"Live (Teilbereiche)", "Täglich", "Wöchentlich", "Monatlich", "Quartalsweise", "Ad-hoc", "Keine Angabe"},
		}),
		model.Ask(model.Question{
			ID:                 "strategie_status",
			Prompt:             "Wie ist der **aktuelle Stand** der Diskussion *Expansion* vs. *Diversifikation*?",
			Options:            []string{"Klar pro Expansion", "Klar pro Diversifikation", "Ausgewogen/offen", "Unterschiedlich je Bereich", "Keine Angabe"},
			CommentPlaceholder: "Kurze Einordnung / Präferenz",
		}),
		model.Ask(model.Question{
			ID:      "szenario_abdeckung",
			Prompt:  "Sollen **beide Strategien** (Expansion & Diversifikation) vergleichbar im Bericht dargestellt werden?",
			Options: DefaultChoices,
		}),

		model.Section("2) Dashboard-Design & Nutzung"),
		model.Ask(model.Question{
			ID:      "layout_praferenz",
			Prompt:  "Bevorzugen Sie **responsives Design** (mehrere Geräte) oder **Canvas** (feste Darstellung für große Screens)?",
			Options: []string{"Responsive", "Canvas", "Hybrid", "Keine Angabe"},
		}),
		model.Ask(model.Question{
			ID:                 "drill_reihenfolge",
			Prompt:             "Welche **Drill-Reihenfolge** bevorzugen Sie?",
			Options:            []string{"Land → Produkt", "Produkt → Land", "Produktgruppe → Produkt → Region", "Noch unklar", "Keine Angabe"},
			CommentPlaceholder: "Alternative Drill-Logiken oder Besonderheiten",
		}),
		model.Ask(model.Question{
			ID:      "anzahl_ansichten",
			Prompt:  "Wie viele **Ansichten** sind sinnvoll, um den Informationsbedarf abzudecken?",
			Options: []string{"3–4 Kernseiten", "Detaillierte Struktur (Regionen/Produkte/Forecast)", "Noch unklar", "Keine Angabe"},
		}),

		model.Section("3) Reporting-Typ & Dokumente"),
		model.Ask(model.Question{
			ID:      "bericht_typ",
			Prompt:  "Bevorzugen Sie **Vorstandsbericht (Management Report)** oder **Benutzerhandbuch (MIS-Guide)**?",
			Options: []string{"Vorstandsbericht", "Benutzerhandbuch", "Beides (kompakt)", "Keine Angabe"},
		}),
		model.Ask(model.Question{
			ID:                 "bericht_details",
			Prompt:             "Was verstehen Sie **konkret** unter einem Vorstandsbericht (Management Report)? Und welche **Details** erwarten Sie in einem Benutzerhandbuch (MIS-Guide)?",
			Options:            DefaultChoices,
			CommentPlaceholder: "Bitte Erwartungen an Inhalt/Tiefe skizzieren",
		}),
		model.Ask(model.Question{
			ID:      "guide_inhalt",
			Prompt:  "Falls ein **Benutzerhandbuch** vorgesehen ist: Soll es **Interpretationen der Kennzahlen** enthalten?",
			Options: DefaultChoices,
		}),
		model.Ask(model.Question{
			ID:                 "best_practices",
			Prompt:             "Gibt es **interne Orientierungen/Vorgaben** für die Gestaltung – oder haben wir **freie Hand**?",
			Options:            DefaultChoices,
			CommentPlaceholder: "Beispiele, Styleguides, Unternehmens-Referenzen",
		}),

		model.Section("4) Analysen, KPIs & Datenlogik"),
		model.Ask(model.Question{
			ID:      "vdt_mehrwert",
			Prompt:  "Wo sehen Sie den größten **Mehrwert** eines **Value Driver Trees**?",
			Options: []string{"Management Overview", "Produktanalyse", "Plan/Forecast (Simulation)", "Übergreifend", "Keine Angabe"},
		}),
		model.Ask(model.Question{
			ID:                 "ist_daten",
			Prompt:             "**Ist-Daten**: Vorliegen aktuell für 2020–2024. Welche Ist-Daten sollen **wie** verwendet werden? Sollen fehlende Ist-Daten für aktuelle Perioden zunächst **simuliert/hochgerechnet** werden?",
			Options:            DefaultChoices,
			CommentPlaceholder: "Bitte gewünschtes Vorgehen zu Ist-Daten & ggf. Simulation beschreiben",
		}),
		model.Ask(model.Question{
			ID:                 "forecast_presets",
			Prompt:             "**Forecast**: Sollen wir **Voreinstellungen** anbieten?",
			Options:            []string{"Optimistisch", "Realistisch", "Pessimistisch", "Keine Angabe"},
			CommentPlaceholder: "Optionale Hinweise zur Parametrisierung (z. B. Wachstum, Marketing, Kosten)",
		}),
		model.Ask(model.Question{
			ID:                 "db1_annahmen",
			Prompt:             "**DB1-Annahmen**: Können wir bei den **operativen Kosten** einen **variablen Anteil** ansetzen (z. B. Prozentsatz) – oder sind diese **voll fix**? (Hinweis: DB1 = Umsatz – variable Kosten)",
			Options:            DefaultChoices,
			CommentPlaceholder: "Vorschlag für %-Satz bzw. Definition variabler Kosten",
		}),
		model.Ask(model.Question{
			ID:      "daten_scope",
			Prompt:  "**Datenscope:** In der Aufgabenstellung wird beschrieben, dass Superphone vor einigen Jahren u. a. nach **Belgien** expandierte. In der bereitgestellten **Excel-Datei** taucht jedoch **Russland** statt Belgien auf. Welches Land sollen wir für das Reporting als Referenz verwenden?",
			Options: []string{"Belgien", "Russland", "Noch unklar", "Keine Angabe"},
		}),

		model.Section("5) Regressionsmodell & Marketing-Lag"),
		model.Ask(model.Question{
			ID:      "regression_info",
			Prompt:  "Sollen wir ein **Regressionsmodell** im Reporting berücksichtigen? Hintergrund: Die **einzige beeinflussbare Variable** ist aktuell das **Marketing**; es zeigt einen **1-Jahres-Lag** (~+1,4 pro Marketing-Einheit auf den Umsatz im Folgejahr).",
			Options: DefaultChoices,
		}),
		model.Ask(model.Question{
			ID:      "regression_integration",
			Prompt:  "Wie möchten Sie die **Integration** der Marketing-Lag-Logik sehen?",
			Options: []string{"Schieberegler (Marketing-Budget)", "Szenario-Buttons (Low/Med/High)", "Parameter-Eingabe (Expertenmodus)", "Noch unklar", "Keine Angabe"},
		}),

		model.Section("6) Sonstiges"),
		model.Ask(model.Question{
			ID:                 "hinweise",
			Prompt:             "Gibt es **weitere Hinweise oder Wünsche**?",
			Options:            DefaultChoices,
			CommentPlaceholder: "Offene Punkte, Risiken, Wünsche",
		}),
	}
}
