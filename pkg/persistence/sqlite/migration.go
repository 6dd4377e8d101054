package sqlite

// migrations returns the versioned schema for the SQLite backend.
func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE IF NOT EXISTS workflow_nodes (
				id TEXT PRIMARY KEY,
				node_id TEXT NOT NULL UNIQUE,
				parent_id TEXT NOT NULL DEFAULT '',
				stage TEXT NOT NULL,
				scenario_title TEXT NOT NULL,
				scenario_description TEXT NOT NULL,
				script_name TEXT NOT NULL,
				script_section TEXT NOT NULL,
				script_content TEXT NOT NULL DEFAULT '',
				on_yes_next_node TEXT NOT NULL DEFAULT '',
				on_no_next_node TEXT NOT NULL DEFAULT '',
				on_no_response_next_node TEXT NOT NULL DEFAULT '',
				crm_actions TEXT NOT NULL,
				workflow_name TEXT NOT NULL DEFAULT '',
				display_order INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_workflow_nodes_parent ON workflow_nodes(parent_id);
			CREATE INDEX IF NOT EXISTS idx_workflow_nodes_workflow ON workflow_nodes(workflow_name);

			CREATE TABLE IF NOT EXISTS leads (
				id TEXT PRIMARY KEY,
				first_name TEXT NOT NULL DEFAULT '',
				full_name TEXT NOT NULL DEFAULT '',
				business_name TEXT NOT NULL DEFAULT '',
				lead_magnet_name TEXT NOT NULL DEFAULT '',
				email TEXT NOT NULL DEFAULT '',
				phone TEXT NOT NULL DEFAULT '',
				status TEXT NOT NULL DEFAULT '',
				history TEXT NOT NULL DEFAULT '[]',
				notes TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP NOT NULL
			);

			CREATE TABLE IF NOT EXISTS profiles (
				id TEXT PRIMARY KEY,
				first_name TEXT NOT NULL DEFAULT '',
				full_name TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP NOT NULL
			);
		`,
	}
}
