package siteconfig

// TemplateVersion identifies the revision of the template constants below.
// Bump it whenever rendered output changes.
const TemplateVersion = "v1"

const unitConfigTemplate = `[uwsgi]
plugins = {{ .Plugin }}
master = true
uid = {{ .Layout.Tenant }}
gid = {{ .WebGroup }}
processes = {{ .Processes }}
venv = {{ .Layout.Sandbox }}
chdir = {{ .Layout.SiteDir }}
daemonize = {{ .Layout.UnitLog }}
socket = {{ .Layout.Socket }}
wsgi-file = {{ .Layout.EntryPoint }}
`

const virtualHostTemplate = `upstream {{ .Layout.Tenant }} {
  server unix:{{ .Layout.Socket }};
}
server {
  listen {{ .Port }};
  server_name {{ .ServerName }};
  charset utf-8;
  client_max_body_size {{ .MaxBodySize }};
  access_log {{ .Layout.AccessLog }};
  error_log {{ .Layout.ErrorLog }};
  location /static {
    alias {{ .Layout.StaticDir }};
  }
  location / {
    uwsgi_pass {{ .Layout.Tenant }};
    include uwsgi_params;
  }
}
`

const manifestTemplate = `UNIX:
  Username= {{ .UnixUser }}
  Password= {{ .UnixPassword }}
POSTGRESQL:
  Username= {{ .DatabaseUser }}
  Password= {{ .DatabasePassword }}
  DB Name = {{ .DatabaseName }}

The application server loads {{ .Layout.EntryPoint }}.
That file must define the WSGI callable in a variable named "application".
Django's generated wsgi.py already does; for Flask add:
  application = app

Files in {{ .Layout.StaticDir }} are served by nginx under /static.
{{ .Layout.UnitConfig }} is the uWSGI configuration and is reloaded automatically.
The nginx configuration is at /etc/nginx/sites-enabled/{{ .Layout.Tenant }}.
`
