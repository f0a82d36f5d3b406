package motion

// Workstreams carries the preview/workstream template for a motion: one
// workstream line per phase index plus motion-specific risks and
// dependencies. Horizons that produce more phases than the template covers
// repeat the final entry.
type Workstreams struct {
	Phases       []string `json:"phases"`
	Risks        []string `json:"risks"`
	Dependencies []string `json:"dependencies"`
}

var workstreamCatalog = map[ID]Workstreams{
	OutboundABM: {
		Phases: []string{
			"Build target account list, tier accounts, and align SDR/AE pods",
			"Launch personalized multi-channel sequences into tier-1 accounts",
			"Run account-level plays with direct mail and executive outreach",
			"Expand into tier-2 accounts and hand warm accounts to sales",
		},
		Risks: []string{
			"Account data quality degrades personalization",
			"SDR capacity limits account coverage",
		},
		Dependencies: []string{
			"Enriched account and contact data",
			"Sales and marketing account tiers agreed",
		},
	},
	ProductLed: {
		Phases: []string{
			"Instrument activation funnel and define the aha moment",
			"Ship onboarding improvements and in-product upgrade prompts",
			"Launch usage-based expansion triggers and self-serve checkout",
			"Tune pricing page and trial-to-paid conversion loops",
		},
		Risks: []string{
			"Activation metric may not correlate with revenue",
			"Product changes compete with roadmap priorities",
		},
		Dependencies: []string{
			"Product analytics instrumentation",
			"Engineering capacity for growth work",
		},
	},
	InboundContent: {
		Phases: []string{
			"Audit existing content and map keywords to funnel stages",
			"Publish pillar pages and refresh high-intent posts",
			"Layer in gated assets, webinars, and nurture tracks",
			"Double down on formats with proven organic traction",
		},
		Risks: []string{
			"Organic traffic compounds slowly against quarterly targets",
			"Content quality bar requires dedicated editorial review",
		},
		Dependencies: []string{
			"SEO tooling and editorial calendar",
			"Subject-matter experts for long-form content",
		},
	},
	PartnerChannel: {
		Phases: []string{
			"Identify partner archetypes and sign first co-sell agreements",
			"Enable partners with playbooks, training, and deal registration",
			"Run joint campaigns and co-marketing with anchor partners",
			"Scale the program with tiered incentives and QBR cadence",
		},
		Risks: []string{
			"Partner-sourced pipeline ramps slower than direct",
			"Channel conflict with the direct sales team",
		},
		Dependencies: []string{
			"Partner portal and deal registration flow",
			"Executive sponsor for anchor partnerships",
		},
	},
	PaidAcquisition: {
		Phases: []string{
			"Stand up conversion tracking and launch baseline campaigns",
			"Iterate creative and landing pages against CAC targets",
			"Scale winning channels and cut underperformers",
			"Shift budget toward retargeting and high-intent segments",
		},
		Risks: []string{
			"CAC inflation as spend scales past early audiences",
			"Attribution gaps hide true channel performance",
		},
		Dependencies: []string{
			"Landing page and creative production pipeline",
			"Clean conversion tracking",
		},
	},

	// Preview-only motions (no scoring config yet).
	OutboundSDR: {
		Phases: []string{
			"Hire and ramp the SDR team on a single proven segment",
			"Systematize sequences, call scripts, and objection handling",
			"Expand coverage to adjacent segments with specialized pods",
		},
		Risks: []string{
			"Ramp time delays pipeline contribution",
		},
		Dependencies: []string{
			"Sales engagement tooling",
		},
	},
	CommunityLed: {
		Phases: []string{
			"Seed the community with founding members and rituals",
			"Program recurring events and member-generated content",
			"Connect community signals to product and pipeline",
		},
		Risks: []string{
			"Community value is hard to attribute to revenue",
		},
		Dependencies: []string{
			"Dedicated community manager",
		},
	},
	EventsField: {
		Phases: []string{
			"Pick anchor events and book speaking slots",
			"Run field dinners and regional meetups in priority metros",
			"Convert event conversations into opportunities with fast follow-up",
		},
		Risks: []string{
			"Event costs are front-loaded against lagging pipeline",
		},
		Dependencies: []string{
			"Field marketing budget approval",
		},
	},
	LifecycleCRM: {
		Phases: []string{
			"Map lifecycle stages and instrument email/CRM triggers",
			"Launch win-back, upsell, and onboarding nurture tracks",
			"Optimize send cadence against engagement and churn signals",
		},
		Risks: []string{
			"Over-mailing suppresses engagement across the base",
		},
		Dependencies: []string{
			"Unified customer data in the CRM",
		},
	},
}

// WorkstreamsFor returns the workstream template for a motion.
func WorkstreamsFor(id ID) (Workstreams, bool) {
	ws, ok := workstreamCatalog[id]
	return ws, ok
}
