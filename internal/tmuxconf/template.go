package tmuxconf

const defaultTemplate = `# Generated by sisi for session {{ .Session }}
{{- $sisi := printf "%s --session %s" (squote .SisiPath) (squote .Session) }}

# General tmux settings
set -g default-terminal "screen-256color"
set -g mouse on
set -g history-limit 10000
set -g base-index 1
setw -g pane-base-index 1

# Key bindings for navigation
bind-key | split-window -h
bind-key - split-window -v
bind-key h select-pane -L
bind-key j select-pane -D
bind-key k select-pane -U
bind-key l select-pane -R

# Project navigation
bind-key n next-window
bind-key p previous-window
{{- range $i := untilStep 1 10 1 }}
bind-key {{ $i }} select-window -t {{ $i }}
{{- end }}

# sisi key bindings
bind-key P run-shell "{{ $sisi }} select"
bind-key C send-keys 'claude' C-m
bind-key S run-shell "{{ $sisi }} stop"
bind-key U command-prompt -p "Refresh directory:" "run-shell \"{{ $sisi }} refresh '%%'\""

# claude-checkpoint-restore keybindings
bind-key R send-keys 'claude-checkpoint-restore' C-m
bind-key M send-keys 'claude-checkpoint-save' C-m

# Project-specific command bindings
{{- range $key, $action := .RunKeys }}
bind-key {{ $key }} send-keys "{{ $sisi }} run {{ $action }}" C-m
{{- end }}

# Quick actions panel
{{- if .Popup }}
bind-key Q display-popup -E -w 80% -h 80% -d "#{pane_current_path}" "{{ $sisi }} actions"
{{- else }}
bind-key Q run-shell "{{ $sisi }} actions --path '#{pane_current_path}'"
{{- end }}

# Status bar - clean design showing current project
set -g status-bg "{{ .StatusBg }}"
set -g status-fg "{{ .StatusFg }}"
set -g status-left-length 20
set -g status-left "#[fg={{ .Accent }},bold]sisi "
set -g status-right-length 50
set -g status-right "#[fg={{ .Accent }}]^B+Q:actions ^B+P:projects ^B+U:refresh ^B+S:stop"
set -g status-interval 5
set -g status-justify centre

# Window status - show current project only
setw -g window-status-format ""
setw -g window-status-current-format " #[fg={{ .StatusFg }},bg={{ .Accent }},bold]▶ #W#[fg=default,bg=default,nobold] #[fg=#666666][#{session_windows} total]#[fg=default] "
`
