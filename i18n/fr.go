package i18n

// Untranslated entries fall back to English.
var french = table{
	QuestionIsFresh:         "Nouveau projet ? (pas encore de git init)",
	QuestionGitHubUsername:  "Nom d'utilisateur GitHub (valeur de git config user.name)",
	QuestionGitHubEmail:     "Email GitHub (valeur de git config user.email)",
	QuestionProjectName:     "Nom du projet",
	QuestionDescription:     "Description du projet",
	QuestionGitHubURL:       "URL du dépôt GitHub",
	QuestionLicense:         "Choisissez une licence",
	QuestionOwner:           "Titulaire de la licence (%s)",
	QuestionSrcDirectory:    "Répertoire des sources (vide pour aucun)",
	QuestionTestDirectory:   "Répertoire des tests (créé s'il n'existe pas)",
	QuestionTestFramework:   "Choisissez un framework de test",
	QuestionTestExtension:   "Extension des fichiers de test",
	QuestionLinter:          "Choisissez un linter",
	QuestionDependencies:    "Dépendances (séparées par des virgules)",
	QuestionDevDependencies: "Dépendances de développement (séparées par des virgules)",
	QuestionMarkdownViewer:  "Installer markdown-viewer ? (https://npmjs.com/package/markdown-viewer)",

	ValidationRequired:   "une valeur est requise",
	ValidationChoice:     "choisissez parmi : %s",
	ValidationEmail:      "%q n'est pas une adresse email",
	ValidationDirectory:  "%q doit être un chemin relatif dans le projet",
	ValidationDependency: "%q n'est pas un identifiant de paquet valide",

	StepVersionControlInit:    "Initialiser le dépôt git",
	StepManifestInit:          "Créer package.json",
	StepSourceDirectoryCreate: "Créer le répertoire des sources",
	StepTestDirectoryCreate:   "Créer le répertoire des tests",
	StepDependencyInstall:     "Installer les dépendances",
	StepManifestUpdate:        "Mettre à jour package.json",
	StepReadmeWrite:           "Écrire README.md",
	StepIgnoreFileWrite:       "Écrire .gitignore",
	StepLicenseGenerate:       "Générer la licence",
	StepLintToolScaffold:      "Configurer le linter",
	StepSampleTestsCreate:     "Créer des tests d'exemple",
	StepCoverageConfigWrite:   "Écrire la configuration de couverture",

	StatusRunning: "en cours",
	StatusDone:    "terminé",
	StatusSkipped: "ignoré",
	StatusFailed:  "échec",

	SkipExists:           "%s existe déjà",
	SkipNotRequested:     "non demandé",
	SkipNotEmpty:         "%s contient déjà des fichiers",
	SkipNothingToInstall: "rien à installer",
	SkipUnlicensed:       "projet sans licence",

	ProgressInstalling:  "installation de %s",
	ProgressCreatingDir: "création de %s",
	ProgressCreatedDir:  "%s créé",

	HelpNavigate: "choisir",
	HelpSubmit:   "valider",
	HelpAbort:    "quitter",
	HelpToggle:   "plus de touches",

	ReadmeInstallation: "Installation",
	ReadmeTesting:      "Tests",
	ReadmeLicense:      "Licence",
}
