package i18n

var english = table{
	QuestionIsFresh:         "Fresh project? (No git init yet)",
	QuestionGitHubUsername:  "GitHub username (git config user.name value)",
	QuestionGitHubEmail:     "GitHub email (git config user.email value)",
	QuestionProjectName:     "Project name",
	QuestionDescription:     "Project description",
	QuestionGitHubURL:       "GitHub repository URL",
	QuestionLicense:         "Select a license",
	QuestionOwner:           "License owner (%s)",
	QuestionSrcDirectory:    "Specify your source directory (leave empty for none)",
	QuestionTestDirectory:   "Specify your test directory (will be created if it does not exist)",
	QuestionTestFramework:   "Select a test framework",
	QuestionTestExtension:   "Test file extension",
	QuestionLinter:          "Select a linter",
	QuestionDependencies:    "Dependencies (comma separated)",
	QuestionDevDependencies: "Development dependencies (comma separated)",
	QuestionMarkdownViewer:  "Install markdown-viewer? (https://npmjs.com/package/markdown-viewer)",

	ValidationRequired:   "a value is required",
	ValidationChoice:     "choose one of: %s",
	ValidationEmail:      "%q is not an email address",
	ValidationDirectory:  "%q must be a relative path inside the project",
	ValidationDependency: "%q is not a valid package identifier",

	StepVersionControlInit:    "Initialize git repository",
	StepManifestInit:          "Create package.json",
	StepSourceDirectoryCreate: "Create source directory",
	StepTestDirectoryCreate:   "Create test directory",
	StepDependencyInstall:     "Install dependencies",
	StepManifestUpdate:        "Update package.json",
	StepReadmeWrite:           "Write README.md",
	StepIgnoreFileWrite:       "Write .gitignore",
	StepLicenseGenerate:       "Generate license",
	StepLintToolScaffold:      "Configure linter",
	StepSampleTestsCreate:     "Create sample tests",
	StepCoverageConfigWrite:   "Write coverage configuration",

	StatusRunning: "running",
	StatusDone:    "done",
	StatusSkipped: "skipped",
	StatusFailed:  "failed",

	SkipExists:           "%s already exists",
	SkipNotRequested:     "not requested",
	SkipNotEmpty:         "%s already contains files",
	SkipNothingToInstall: "nothing to install",
	SkipUnlicensed:       "project is unlicensed",
	SkipNoLinterConfig:   "%s needs no configuration file",
	SkipNoCoverageTool:   "%s reports coverage without nyc",

	ProgressInstalling:  "installing %s",
	ProgressCreatingDir: "creating %s",
	ProgressCreatedDir:  "created %s",

	HelpNavigate: "choose",
	HelpSubmit:   "confirm",
	HelpAbort:    "quit",
	HelpToggle:   "more keys",

	ReadmeInstallation: "Installation",
	ReadmeTesting:      "Testing",
	ReadmeLicense:      "License",
}
