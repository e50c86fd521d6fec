package data

// ModuleRules is everything the engine build needs to configure the crash
// reporting module, including the resolved SDK bundle.
type ModuleRules struct {
	Name string `json:"name"`

	PCHUsage    string `json:"pch_usage"`
	IWYUSupport string `json:"iwyu_support"`

	PublicDependencyModules  []string `json:"public_dependency_modules"`
	PrivateDependencyModules []string `json:"private_dependency_modules"`

	Bundle *Bundle `json:"bundle"`
}
