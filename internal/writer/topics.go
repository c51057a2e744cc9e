// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package writer

// DefaultTopics is the static topic pool the selector draws from. Order
// matters only as a tie-breaker for the deterministic shuffle.
var DefaultTopics = []string{
	"Kubernetes capacity planning beyond requests and limits",
	"GitOps rollbacks that actually work",
	"Terraform state at scale",
	"The hidden cost of microservices",
	"Postgres connection pooling in production",
	"Observability on a budget",
	"Zero-downtime database migrations",
	"Secrets management without the theater",
	"CI pipelines that stay fast after year two",
	"When to leave the cloud",
	"Service mesh tradeoffs nobody mentions",
	"Infrastructure as code review practices",
	"SLOs for small teams",
	"Caching strategies that age well",
	"Container image supply chain hygiene",
	"Incident retrospectives that change behavior",
	"Feature flags as deployment infrastructure",
	"Queue-based load leveling in practice",
	"The case for boring technology",
	"Multi-region before you need it",
	"Platform teams and the golden path",
	"Cost observability for engineers",
	"Blue-green versus canary deployments",
	"On-call rotations that do not burn people out",
	"Backup strategies you have actually tested",
	"API versioning for internal services",
	"Runbooks as executable documentation",
	"LLM-assisted code review in CI",
	"Vector databases for operational workloads",
	"Edge computing for latency-sensitive APIs",
}
