// Package provisioner groups the services that prepare a host and its tenants.
//
// Subpackages:
//   - tenant: OS account creation and authorized key distribution
//   - sandbox: per-tenant Python virtual environments
//   - database: PostgreSQL role and owned database creation
//   - web: uWSGI and nginx publication for a tenant
//   - domain: the end-to-end tenant provisioning flow
//   - server: one-time host preparation and service reloads
//   - provisionerr: error kinds shared by all of the above
package provisioner
